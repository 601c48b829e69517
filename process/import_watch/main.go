// Command import_watch bulk-imports taxpayer rosters from a drop directory.
// It scans existing workbooks on startup and can stay running to pick up new
// files as operators drop them in.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"declara/models"
	"declara/pkg/roster"
	"declara/pkg/taxcal"
)

// local copies of the registry's field rules (this tool runs standalone)
var (
	cedulaRE  = regexp.MustCompile(`^\d{6,}$`)
	celularRE = regexp.MustCompile(`^3\d{9}$`)
)

var db *gorm.DB

var verbose bool

func mustInitDBFromEnv() *gorm.DB {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatalf("DB_DSN must be set in environment to run this tool")
	}
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	return gdb
}

func main() {
	dirFlag := flag.String("dir", "imports", "directory to scan for roster workbooks")
	watch := flag.Bool("watch", false, "watch directory for new files")
	workers := flag.Int("workers", 2, "worker pool size")
	dryRun := flag.Bool("dry-run", false, "parse and report without writing to the DB")
	flag.BoolVar(&verbose, "verbose", false, "verbose per-row logging")
	flag.Parse()

	if *dryRun {
		log.Printf("Dry-run: scanning %s (no DB interaction)", *dirFlag)
		for _, f := range listWorkbooks(*dirFlag) {
			entries, err := roster.ParseFile(filepath.Join(*dirFlag, f))
			if err != nil {
				log.Printf("%s: %v", f, err)
				continue
			}
			log.Printf("%s: %d rows", f, len(entries))
		}
		return
	}

	db = mustInitDBFromEnv()

	initial := listWorkbooks(*dirFlag)
	log.Printf("Found %d workbook(s) in %s", len(initial), *dirFlag)

	if *watch {
		if err := watchDirectory(*dirFlag, initial, *workers); err != nil {
			log.Fatalf("watch failed: %v", err)
		}
		return
	}
	runWorkerPool(*dirFlag, initial, *workers, nil)
}

func listWorkbooks(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !isWorkbook(e.Name()) {
			continue
		}
		out = append(out, e.Name())
	}
	sort.Strings(out)
	return out
}

func isWorkbook(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".xlsx" || ext == ".xls"
}

func watchDirectory(dir string, initial []string, workers int) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return err
	}
	log.Printf("Watching %s (debounced) ...", dir)

	fileCh := make(chan string, 256)
	go func() {
		// debounce pending files so half-copied workbooks settle first
		pending := map[string]time.Time{}
		ticker := time.NewTicker(250 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					close(fileCh)
					return
				}
				if ev.Op&fsnotify.Create == fsnotify.Create || ev.Op&fsnotify.Write == fsnotify.Write {
					name := filepath.Base(ev.Name)
					if !isWorkbook(name) {
						continue
					}
					pending[name] = time.Now()
				}
			case <-ticker.C:
				now := time.Now()
				for name, t := range pending {
					if now.Sub(t) > 500*time.Millisecond { // stable
						fileCh <- name
						delete(pending, name)
					}
				}
			case err, ok := <-w.Errors:
				if !ok {
					close(fileCh)
					return
				}
				log.Printf("watch error: %v", err)
			}
		}
	}()

	go runWorkerPool(dir, initial, workers, fileCh)
	// block forever (Ctrl+C to exit)
	select {}
}

func runWorkerPool(dir string, initial []string, workers int, extra <-chan string) {
	fileCh := make(chan string, 1024)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range fileCh {
				importWorkbook(dir, name)
			}
		}()
	}
	for _, name := range initial {
		fileCh <- name
	}
	if extra != nil {
		for name := range extra {
			fileCh <- name
		}
	}
	close(fileCh)
	wg.Wait()
}

// importWorkbook parses one roster file and inserts its rows. Bad rows and
// duplicate cedulas are logged and skipped, never fatal.
func importWorkbook(dir, name string) {
	path := filepath.Join(dir, name)
	entries, err := roster.ParseFile(path)
	if err != nil {
		log.Printf("%s: parse failed: %v", name, err)
		return
	}
	created, skipped := 0, 0
	for _, e := range entries {
		cedula := strings.TrimSpace(e.Cedula)
		nombres := strings.ToUpper(strings.TrimSpace(e.Nombres))
		celular := strings.TrimSpace(e.Celular)
		if !cedulaRE.MatchString(cedula) || len(nombres) < 3 || !celularRE.MatchString(celular) {
			if verbose {
				log.Printf("%s row %d: invalid fields, skipped", name, e.Row)
			}
			skipped++
			continue
		}
		tp := models.Taxpayer{
			Cedula:           cedula,
			Nombres:          nombres,
			Celular:          celular,
			FechaVencimiento: taxcal.DueDateFor(cedula),
		}
		if err := db.Create(&tp).Error; err != nil {
			// unique index rejects re-imported rows
			if verbose {
				log.Printf("%s row %d: %v", name, e.Row, err)
			}
			skipped++
			continue
		}
		created++
	}
	log.Printf("%s: imported %d row(s), skipped %d", name, created, skipped)
}
