package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"declara/models"
	"declara/pkg/taxcal"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func mustDBFromEnv() *gorm.DB {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN not set in env")
	}
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	return gdb
}

type seedRow struct {
	cedula  string
	nombres string
	celular string
}

// the known roster the tool ships with
var realTaxpayers = []seedRow{
	{"87063020", "LUIS HERNANDO PORTILLO RIASCOS", "3167945111"},
	{"98339322", "VICTOR FELIPE MUÑOZ", "3148239934"},
	{"87245430", "CARLOS AMILCAR GOMEZ", "3116841978"},
	{"5230831", "EYDER MIÑOZ MUÑOZ", "3137022985"},
	{"5211936", "GERMAN MELO", "3137377868"},
	{"98339344", "WILLIAM URBANO", "3104137834"},
	{"27150249", "LIDIA ROSEOR BRAVO", "3178640165"},
	{"1085291051", "CAROLINA ANDREA LOPEZ MARROQUIN", "3117059186"},
	{"1080900757", "DORA LILIANA ROSERO BRAVO", "3136316069"},
	{"1080903575", "ANDREA PATRICIA ROSERO RIASCOS", "3146900454"},
	{"13070275", "JAIRO ROSALES", "3166283559"},
	{"5230788", "FREDY URBANO", "3116197622"},
	{"1085286295", "ELIER FERNANDO ROSERO BRAVO", "3117098269"},
}

var firstNames = []string{
	"ALEJANDRO", "BEATRIZ", "CARLOS", "DIANA", "EDUARDO", "FERNANDA", "GABRIEL", "HELENA",
	"IGNACIO", "JULIANA", "KEVIN", "LORENA", "MAURICIO", "NATALIA", "OSCAR", "PATRICIA",
	"QUINTIN", "RAQUEL", "SEBASTIAN", "TATIANA", "ULISES", "VALENTINA", "WILLIAM", "XIMENA",
	"YOLANDA", "ZACARIAS",
}

var lastNames = []string{
	"GARCIA", "RODRIGUEZ", "MARTINEZ", "HERNANDEZ", "LOPEZ", "GONZALEZ", "PEREZ", "SANCHEZ",
	"RAMIREZ", "CRUZ", "FLORES", "GOMEZ", "MORALES", "VAZQUEZ", "JIMENEZ", "RUIZ",
	"TORRES", "RIVERA", "SILVA", "CASTRO", "VARGAS", "RAMOS", "ORTIZ", "MENDOZA",
}

func randomRow() seedRow {
	cedula := fmt.Sprintf("%d", rand.Intn(90000000)+10000000)
	nombres := fmt.Sprintf("%s %s %s",
		firstNames[rand.Intn(len(firstNames))],
		lastNames[rand.Intn(len(lastNames))],
		lastNames[rand.Intn(len(lastNames))])
	celular := fmt.Sprintf("3%09d", rand.Intn(900000000)+100000000)
	return seedRow{cedula: cedula, nombres: nombres, celular: celular}
}

func main() {
	extra := flag.Int("extra", 0, "number of generated taxpayers to add on top of the known roster")
	wipe := flag.Bool("wipe", false, "delete existing taxpayers before seeding")
	dry := flag.Bool("dry-run", false, "print what would be inserted without writing")
	flag.Parse()

	db := mustDBFromEnv()

	if *wipe && !*dry {
		if err := db.Where("1 = 1").Delete(&models.Taxpayer{}).Error; err != nil {
			log.Fatalf("wipe failed: %v", err)
		}
		log.Println("existing taxpayers deleted")
	}

	rows := make([]seedRow, 0, len(realTaxpayers)+*extra)
	rows = append(rows, realTaxpayers...)
	for i := 0; i < *extra; i++ {
		rows = append(rows, randomRow())
	}

	inserted, skipped := 0, 0
	for _, r := range rows {
		due := taxcal.DueDateFor(r.cedula)
		if *dry {
			fmt.Printf("%s  %-40s %s  vence %s\n", r.cedula, r.nombres, r.celular, due)
			continue
		}
		tp := models.Taxpayer{
			Cedula:           r.cedula,
			Nombres:          r.nombres,
			Celular:          r.celular,
			FechaVencimiento: due,
		}
		if err := db.Create(&tp).Error; err != nil {
			// duplicates are normal on repeated runs
			skipped++
			continue
		}
		inserted++
	}
	if !*dry {
		log.Printf("seeded %d taxpayers (%d skipped)", inserted, skipped)
	}
}
