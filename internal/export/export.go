// Package export renders the admin record sets as a spreadsheet or CSV.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/BruksfildServices01/dental-lab/internal/domain/contact"
	"github.com/BruksfildServices01/dental-lab/internal/httperr"
	"github.com/BruksfildServices01/dental-lab/internal/models"
	"github.com/BruksfildServices01/dental-lab/internal/usecase/dashboard"
)

const stampLayout = "2006-01-02 15:04"

const (
	SheetAppointments = "Citas"
	SheetContacts     = "Contactos"
	SheetSummary      = "Resumen"

	EntityAppointments = "appointments"
	EntityContacts     = "contacts"
)

type Dataset struct {
	Appointments []models.Appointment
	Contacts     []models.Contact
	Summary      dashboard.Summary
	GeneratedAt  time.Time
}

var appointmentHeader = []string{"ID", "Nombre", "Correo", "Teléfono", "Servicio", "Fecha", "Hora", "Estado", "Notas", "Creado"}

func appointmentRow(ap models.Appointment, loc *time.Location) []string {
	return []string{
		ap.ID, ap.Name, ap.Email, ap.Phone, ap.Service,
		ap.Date, ap.Time, ap.Status, ap.Notes,
		ap.CreatedAt.In(loc).Format(stampLayout),
	}
}

var contactHeader = []string{"ID", "Nombre", "Correo", "Teléfono", "Asunto", "Mensaje", "Estado", "Prioridad", "Origen", "Notas internas", "Creado"}

func contactRow(c models.Contact, loc *time.Location) []string {
	return []string{
		c.ID, c.Name, c.Email, c.Phone, c.Subject, c.Message,
		c.Status, c.Priority, c.Source, c.AdminNotes,
		c.CreatedAt.In(loc).Format(stampLayout),
	}
}

// csvSafe quotes cells a spreadsheet would read as a formula.
func csvSafe(row []string) []string {
	for i, v := range row {
		if v != "" && strings.ContainsRune("=+-@\t\r", rune(v[0])) {
			row[i] = "'" + v
		}
	}
	return row
}

// WriteCSV writes one entity as CSV with a header row. Cells starting with
// a formula character get a leading quote.
func WriteCSV(w io.Writer, entity string, d Dataset) error {
	loc := d.GeneratedAt.Location()
	cw := csv.NewWriter(w)

	switch entity {
	case EntityAppointments:
		if err := cw.Write(appointmentHeader); err != nil {
			return err
		}
		for _, ap := range d.Appointments {
			if err := cw.Write(csvSafe(appointmentRow(ap, loc))); err != nil {
				return err
			}
		}
	case EntityContacts:
		if err := cw.Write(contactHeader); err != nil {
			return err
		}
		for _, c := range d.Contacts {
			if err := cw.Write(csvSafe(contactRow(c, loc))); err != nil {
				return err
			}
		}
	default:
		return httperr.ErrBusiness(httperr.CodeNotFound)
	}

	cw.Flush()
	return cw.Error()
}

// WriteSpreadsheet writes the Citas, Contactos and Resumen sheets.
func WriteSpreadsheet(w io.Writer, d Dataset) error {
	f := excelize.NewFile()
	defer f.Close()

	loc := d.GeneratedAt.Location()

	if err := f.SetSheetName("Sheet1", SheetAppointments); err != nil {
		return err
	}
	rows := make([][]string, 0, len(d.Appointments)+1)
	rows = append(rows, appointmentHeader)
	for _, ap := range d.Appointments {
		rows = append(rows, appointmentRow(ap, loc))
	}
	if err := writeRows(f, SheetAppointments, rows); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetContacts); err != nil {
		return err
	}
	rows = rows[:0]
	rows = append(rows, contactHeader)
	for _, c := range d.Contacts {
		rows = append(rows, contactRow(c, loc))
	}
	if err := writeRows(f, SheetContacts, rows); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetSummary); err != nil {
		return err
	}
	if err := writeRows(f, SheetSummary, summaryRows(d)); err != nil {
		return err
	}

	if err := f.SetColWidth(SheetAppointments, "A", "J", 18); err != nil {
		return err
	}

	_, err := f.WriteTo(w)
	return err
}

func summaryRows(d Dataset) [][]string {
	a, c := d.Summary.Appointments, d.Summary.Contacts
	rows := [][]string{
		{"Indicador", "Valor"},
		{"Generado", d.GeneratedAt.Format(stampLayout)},
		{"Citas totales", strconv.Itoa(a.Total)},
		{"Citas hoy", strconv.Itoa(a.Today)},
		{"Citas últimos 7 días", strconv.Itoa(a.ThisWeek)},
		{"Citas este mes", strconv.Itoa(a.ThisMonth)},
	}
	rows = append(rows, statusRows("Citas", a.ByStatus)...)
	rows = append(rows,
		[]string{"Contactos totales", strconv.Itoa(c.Total)},
		[]string{"Contactos sin leer", strconv.Itoa(d.Summary.UnreadContacts)},
	)
	return append(rows, statusRows("Contactos", c.ByStatus)...)
}

func statusRows(prefix string, byStatus map[string]int) [][]string {
	keys := make([]string, 0, len(byStatus))
	for k := range byStatus {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([][]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, []string{fmt.Sprintf("%s (%s)", prefix, k), strconv.Itoa(byStatus[k])})
	}
	return out
}

func writeRows(f *excelize.File, sheet string, rows [][]string) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

type AppointmentSource interface {
	ListAll(ctx context.Context, limit int) ([]models.Appointment, error)
}

type ContactSource interface {
	List(ctx context.Context, f contact.Filter) ([]models.Contact, error)
}

type Uploader interface {
	Put(ctx context.Context, key, contentType string, body []byte) error
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	LinkTTL         = 15 * time.Minute
)

type Service struct {
	appointments AppointmentSource
	contacts     ContactSource
	uploader     Uploader
	prefix       string
	now          func() time.Time
}

// NewService builds the export service. uploader may be nil when object
// storage is not configured.
func NewService(a AppointmentSource, c ContactSource, uploader Uploader, prefix string, now func() time.Time) *Service {
	return &Service{appointments: a, contacts: c, uploader: uploader, prefix: prefix, now: now}
}

func (s *Service) Collect(ctx context.Context) (Dataset, error) {
	aps, err := s.appointments.ListAll(ctx, 0)
	if err != nil {
		return Dataset{}, err
	}
	cs, err := s.contacts.List(ctx, contact.Filter{})
	if err != nil {
		return Dataset{}, err
	}

	now := s.now()
	return Dataset{
		Appointments: aps,
		Contacts:     cs,
		Summary: dashboard.Summary{
			Appointments:   dashboard.SummarizeAppointments(aps, now),
			Contacts:       dashboard.SummarizeContacts(cs, now),
			UnreadContacts: dashboard.NewContacts(cs),
		},
		GeneratedAt: now,
	}, nil
}

func (s *Service) FileName() string {
	return "reporte-" + s.now().Format("20060102-1504") + ".xlsx"
}

func (s *Service) CanUpload() bool {
	return s.uploader != nil
}

// Upload stores a fresh spreadsheet and returns a link valid for 15 minutes.
func (s *Service) Upload(ctx context.Context) (key, url string, err error) {
	if s.uploader == nil {
		return "", "", fmt.Errorf("object storage not configured")
	}

	d, err := s.Collect(ctx)
	if err != nil {
		return "", "", err
	}

	var buf bytes.Buffer
	if err := WriteSpreadsheet(&buf, d); err != nil {
		return "", "", err
	}

	key = s.prefix + s.FileName()
	if err := s.uploader.Put(ctx, key, ContentTypeXLSX, buf.Bytes()); err != nil {
		return "", "", err
	}

	url, err = s.uploader.PresignGet(ctx, key, LinkTTL)
	if err != nil {
		return "", "", err
	}
	return key, url, nil
}
