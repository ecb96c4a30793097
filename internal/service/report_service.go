package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"skladpro/internal/domain"
	"skladpro/internal/repository"
)

// ReportKind вид отчёта
type ReportKind string

const (
	ReportReceiving ReportKind = "receiving"
	ReportShipping  ReportKind = "shipping"
	ReportStock     ReportKind = "stock"
	ReportInventory ReportKind = "inventory"
)

func (k ReportKind) IsValid() bool {
	switch k {
	case ReportReceiving, ReportShipping, ReportStock, ReportInventory:
		return true
	default:
		return false
	}
}

var reportTitles = map[ReportKind]string{
	ReportReceiving: "Отчет по приемке",
	ReportShipping:  "Отчет по отгрузке",
	ReportStock:     "Отчет по остаткам",
	ReportInventory: "Отчет по инвентаризации",
}

// Report табличный отчёт
type Report struct {
	Kind        ReportKind       `json:"kind"`
	Title       string           `json:"title"`
	GeneratedAt time.Time        `json:"generated_at"`
	Columns     []string         `json:"columns"`
	Rows        [][]string       `json:"rows"`
	Summary     map[string]int64 `json:"summary"`
}

// StatusText подпись статуса заявки
func StatusText(s domain.RequestStatus) string {
	switch s {
	case domain.RequestStatusPending:
		return "Ожидание"
	case domain.RequestStatusInProgress:
		return "В работе"
	case domain.RequestStatusCompleted:
		return "Завершено"
	case domain.RequestStatusCancelled:
		return "Отменено"
	default:
		return string(s)
	}
}

type ReportService struct {
	requests repository.RequestRepository
	products repository.ProductRepository
	zones    repository.ZoneRepository
	now      func() time.Time
}

func NewReportService(requests repository.RequestRepository, products repository.ProductRepository, zones repository.ZoneRepository) *ReportService {
	return &ReportService{requests: requests, products: products, zones: zones, now: time.Now}
}

// Build формирует отчёт по текущему состоянию
func (s *ReportService) Build(ctx context.Context, kind ReportKind) (*Report, error) {
	if !kind.IsValid() {
		return nil, ErrInvalidInput
	}
	r := &Report{Kind: kind, Title: reportTitles[kind], GeneratedAt: s.now().UTC(), Summary: map[string]int64{}}
	var err error
	switch kind {
	case ReportReceiving:
		err = s.requestReport(ctx, r, domain.RequestTypeReceiving)
	case ReportShipping:
		err = s.requestReport(ctx, r, domain.RequestTypeShipping)
	case ReportInventory:
		err = s.requestReport(ctx, r, domain.RequestTypeInventory)
	case ReportStock:
		err = s.stockReport(ctx, r)
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s *ReportService) requestReport(ctx context.Context, r *Report, t domain.RequestType) error {
	list, err := s.requests.List(ctx, repository.RequestFilter{Type: &t})
	if err != nil {
		return err
	}
	r.Columns = []string{"№", "Статус", "Дата", "Примечание"}
	r.Rows = make([][]string, 0, len(list))
	for _, st := range domain.RequestStatuses {
		r.Summary[string(st)] = 0
	}
	for _, req := range list {
		notes := ""
		if req.Notes != nil {
			notes = *req.Notes
		}
		r.Rows = append(r.Rows, []string{
			strconv.FormatInt(req.ID, 10),
			StatusText(req.Status),
			req.CreatedAt.Format("02.01.2006"),
			notes,
		})
		r.Summary[string(req.Status)]++
	}
	r.Summary["total"] = int64(len(list))
	return nil
}

func (s *ReportService) stockReport(ctx context.Context, r *Report) error {
	products, err := s.products.List(ctx, repository.ProductFilter{})
	if err != nil {
		return err
	}
	zones, err := s.zones.List(ctx)
	if err != nil {
		return err
	}
	r.Columns = []string{"Артикул", "Наименование", "Категория", "Ед. изм.", "Цена", "Статус"}
	r.Rows = make([][]string, 0, len(products))
	for _, p := range products {
		r.Rows = append(r.Rows, []string{p.SKU, p.Name, p.Category, p.Unit, p.Price.StringFixed(2), string(p.Status)})
		r.Summary["products_"+string(p.Status)]++
	}
	r.Summary["products"] = int64(len(products))
	for _, z := range zones {
		r.Summary["capacity"] += z.Capacity
		r.Summary["occupied"] += z.Occupied
		r.Summary["zone_"+z.Code+"_free"] = z.Free()
	}
	return nil
}

// WriteCSV выгружает отчёт в CSV (Windows-1251, разделитель ";")
func WriteCSV(w io.Writer, r *Report) error {
	enc := transform.NewWriter(w, encoding.ReplaceUnsupported(charmap.Windows1251.NewEncoder()))
	cw := csv.NewWriter(enc)
	cw.Comma = ';'
	if err := cw.Write([]string{r.Title, r.GeneratedAt.Format("02.01.2006 15:04")}); err != nil {
		return fmt.Errorf("write title: %w", err)
	}
	if err := cw.Write(r.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := cw.WriteAll(r.Rows); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
