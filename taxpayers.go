package main

import (
	"errors"
	"log"
	"regexp"
	"strings"
	"time"

	"declara/models"
	"declara/pkg/roster"
	"declara/pkg/taxcal"

	"gorm.io/gorm"
)

var (
	cedulaRE  = regexp.MustCompile(`^\d{6,}$`)
	celularRE = regexp.MustCompile(`^3\d{9}$`) // Colombian mobile: 10 digits starting with 3
)

// TaxpayerInput carries the three operator-provided fields; everything else on
// the record is derived or registry-managed.
type TaxpayerInput struct {
	Cedula  string
	Nombres string
	Celular string
}

// normalizeAndValidate trims and upper-cases the input in place and checks the
// field constraints. Returns a *ValidationError on the first violation.
func normalizeAndValidate(in *TaxpayerInput) error {
	in.Cedula = strings.TrimSpace(in.Cedula)
	in.Nombres = strings.ToUpper(strings.TrimSpace(in.Nombres))
	in.Celular = strings.TrimSpace(in.Celular)
	if !cedulaRE.MatchString(in.Cedula) {
		return &ValidationError{Field: "cedula", Msg: "must be at least 6 digits"}
	}
	if len(in.Nombres) < 3 {
		return &ValidationError{Field: "nombres", Msg: "must be at least 3 characters"}
	}
	if !celularRE.MatchString(in.Celular) {
		return &ValidationError{Field: "celular", Msg: "must be 10 digits starting with 3"}
	}
	return nil
}

// CreateTaxpayer validates the input, derives the filing date from the cedula
// and persists the record. A cedula collision yields ErrDuplicateCedula.
func CreateTaxpayer(in TaxpayerInput) (*models.Taxpayer, error) {
	if err := normalizeAndValidate(&in); err != nil {
		return nil, err
	}
	// pre-check existing (optimistic); the unique index is the real guard
	var existing models.Taxpayer
	if err := db.Where("cedula = ?", in.Cedula).First(&existing).Error; err == nil {
		return nil, ErrDuplicateCedula
	}
	tp := models.Taxpayer{
		Cedula:           in.Cedula,
		Nombres:          in.Nombres,
		Celular:          in.Celular,
		FechaVencimiento: taxcal.DueDateFor(in.Cedula),
	}
	if err := db.Create(&tp).Error; err != nil {
		if isUniqueConstraintError(err) { // race after the pre-check
			return nil, ErrDuplicateCedula
		}
		return nil, err
	}
	return &tp, nil
}

// UpdateTaxpayer replaces the operator-provided fields of a record and
// re-derives the filing date. Fails with ErrTaxpayerNotFound for an unknown id
// and ErrDuplicateCedula when a different record already owns the cedula.
func UpdateTaxpayer(id uint, in TaxpayerInput) (*models.Taxpayer, error) {
	if err := normalizeAndValidate(&in); err != nil {
		return nil, err
	}
	var tp models.Taxpayer
	if err := db.First(&tp, id).Error; err != nil {
		return nil, ErrTaxpayerNotFound
	}
	var other models.Taxpayer
	if err := db.Where("cedula = ? AND id <> ?", in.Cedula, id).First(&other).Error; err == nil {
		return nil, ErrDuplicateCedula
	}
	tp.Cedula = in.Cedula
	tp.Nombres = in.Nombres
	tp.Celular = in.Celular
	tp.FechaVencimiento = taxcal.DueDateFor(in.Cedula)
	if err := db.Save(&tp).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, ErrDuplicateCedula
		}
		return nil, err
	}
	return &tp, nil
}

// DeleteTaxpayer removes a record permanently; there is no soft delete.
func DeleteTaxpayer(id uint) error {
	res := db.Delete(&models.Taxpayer{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrTaxpayerNotFound
	}
	return nil
}

func GetTaxpayer(id uint) (*models.Taxpayer, error) {
	var tp models.Taxpayer
	if err := db.First(&tp, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaxpayerNotFound
		}
		return nil, err
	}
	return &tp, nil
}

// ListTaxpayers returns every record ascending by parsed filing date. Fetching
// in id order and sorting stably keeps insertion order among shared dates.
func ListTaxpayers() ([]models.Taxpayer, error) {
	var items []models.Taxpayer
	if err := db.Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	sortTaxpayers(items)
	return items, nil
}

// SearchTaxpayers matches the term case-insensitively against nombres and as a
// substring of the cedula, sorted like ListTaxpayers.
func SearchTaxpayers(term string) ([]models.Taxpayer, error) {
	var items []models.Taxpayer
	pattern := "%" + term + "%"
	q := db.Where("LOWER(nombres) LIKE LOWER(?) OR cedula LIKE ?", pattern, pattern)
	if err := q.Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	sortTaxpayers(items)
	return items, nil
}

func sortTaxpayers(items []models.Taxpayer) {
	taxcal.SortByDueDate(items, func(tp models.Taxpayer) string { return tp.FechaVencimiento })
}

// MarkNotified records that a reminder was composed/sent for the record. It is
// idempotent: an already-notified record just gets a fresh notification date.
// There is no transition back to the un-notified state.
func MarkNotified(id uint) error {
	now := time.Now()
	res := db.Model(&models.Taxpayer{}).Where("id = ?", id).
		Updates(map[string]any{"notificado": true, "last_notification": now})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrTaxpayerNotFound
	}
	return nil
}

// ImportResult reports the outcome of a bulk import; row failures are collected
// per cedula instead of aborting the batch.
type ImportResult struct {
	Created int           `json:"created"`
	Errors  []ImportError `json:"errors"`
}

type ImportError struct {
	Cedula string `json:"cedula"`
	Row    int    `json:"row,omitempty"`
	Error  string `json:"error"`
}

// ImportTaxpayers creates one record per roster entry, continuing past bad rows.
func ImportTaxpayers(entries []roster.Entry) ImportResult {
	var result ImportResult
	for _, e := range entries {
		_, err := CreateTaxpayer(TaxpayerInput{Cedula: e.Cedula, Nombres: e.Nombres, Celular: e.Celular})
		if err != nil {
			result.Errors = append(result.Errors, ImportError{Cedula: e.Cedula, Row: e.Row, Error: err.Error()})
			continue
		}
		result.Created++
	}
	return result
}

// Stats is the dashboard aggregate. The change percentages are fixed
// placeholders, not derived from history.
type Stats struct {
	Total          int64  `json:"total"`
	Notified       int64  `json:"notified"`
	Pending        int64  `json:"pending"`
	Urgent         int64  `json:"urgent"`
	TotalChange    string `json:"totalChange"`
	PendingChange  string `json:"pendingChange"`
	NotifiedChange string `json:"notifiedChange"`
	UrgentChange   string `json:"urgentChange"`
}

// urgentDuePatterns is the near-term window the urgent count matches literal
// due-date strings against. Hard-coded to the 2025 season on purpose: this
// mirrors the production behavior instead of re-deriving from day deltas.
// TODO: switch to taxcal.Classify once the 2025 filing season closes.
var urgentDuePatterns = []string{
	"%8-2025",
	"1-9-2025",
	"2-9-2025",
	"3-9-2025",
	"4-9-2025",
	"5-9-2025",
}

// ComputeStats counts the collection at call time. Errors are logged and an
// empty aggregate returned, so the dashboard never hard-fails on stats.
func ComputeStats() Stats {
	stats := Stats{
		TotalChange:    "+12%",
		PendingChange:  "-5%",
		NotifiedChange: "+28%",
		UrgentChange:   "-15%",
	}
	if err := db.Model(&models.Taxpayer{}).Count(&stats.Total).Error; err != nil {
		log.Printf("stats: total count failed: %v", err)
		return Stats{TotalChange: "0%", PendingChange: "0%", NotifiedChange: "0%", UrgentChange: "0%"}
	}
	db.Model(&models.Taxpayer{}).Where("notificado = ?", true).Count(&stats.Notified)
	db.Model(&models.Taxpayer{}).Where("notificado = ?", false).Count(&stats.Pending)

	q := db.Model(&models.Taxpayer{}).Where("notificado = ?", false)
	cond := "("
	args := make([]any, 0, len(urgentDuePatterns))
	for i, p := range urgentDuePatterns {
		if i > 0 {
			cond += " OR "
		}
		cond += "fecha_vencimiento LIKE ?"
		args = append(args, p)
	}
	cond += ")"
	if err := q.Where(cond, args...).Count(&stats.Urgent).Error; err != nil {
		log.Printf("stats: urgent count failed: %v", err)
	}
	return stats
}
