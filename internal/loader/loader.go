// Package loader подтягивает данные смежных сервисов после входа.
// Каждый запрос независим: ошибка одного только логируется и не влияет на остальные.
package loader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"skladpro/internal/domain"
	"skladpro/internal/logging"
	"skladpro/internal/metrics"
	"skladpro/internal/repository"
)

// Пути коллекций смежных сервисов
const (
	PathRequests    = "/api/requests"
	PathProducts    = "/api/products"
	PathContractors = "/api/contractors"
	PathOrders      = "/api/orders"
	PathZones       = "/api/zones"
)

var errNotArray = errors.New("response is not a JSON array")

// Targets списки, которые заменяются при успешной загрузке
type Targets struct {
	Requests    repository.RequestRepository
	Products    repository.ProductRepository
	Contractors repository.ContractorRepository
	Orders      repository.OrderRepository
	Zones       repository.ZoneRepository
}

// Outcome результат загрузки одной коллекции
type Outcome struct {
	Path string
	Err  error
}

type Loader struct {
	baseURL string
	client  *http.Client
	targets Targets
}

func New(baseURL string, timeout time.Duration, targets Targets) *Loader {
	return &Loader{baseURL: baseURL, client: &http.Client{Timeout: timeout}, targets: targets}
}

// Enabled загрузка выключена, если адрес смежных сервисов не задан
func (l *Loader) Enabled() bool { return l.baseURL != "" }

// Load опрашивает все коллекции параллельно и возвращает исходы в фиксированном порядке
func (l *Loader) Load(ctx context.Context) []Outcome {
	jobs := []struct {
		path string
		run  func(ctx context.Context, url string) error
	}{
		{PathRequests, func(ctx context.Context, url string) error {
			return load(ctx, l.client, url, l.targets.Requests.Replace)
		}},
		{PathProducts, func(ctx context.Context, url string) error {
			return load(ctx, l.client, url, l.targets.Products.Replace)
		}},
		{PathContractors, func(ctx context.Context, url string) error {
			return load(ctx, l.client, url, l.targets.Contractors.Replace)
		}},
		{PathOrders, func(ctx context.Context, url string) error {
			return load(ctx, l.client, url, l.targets.Orders.Replace)
		}},
		{PathZones, func(ctx context.Context, url string) error {
			return load(ctx, l.client, url, l.targets.Zones.Replace)
		}},
	}

	outcomes := make([]Outcome, len(jobs))
	var wg sync.WaitGroup
	for i, job := range jobs {
		i, job := i, job
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := job.run(ctx, l.baseURL+job.path)
			outcomes[i] = Outcome{Path: job.path, Err: err}
			if err != nil {
				metrics.CollaboratorFetches.WithLabelValues(job.path, "failed").Inc()
				logging.LogKV("warn", "collaborator fetch ignored", map[string]interface{}{
					"path": job.path, "error": err.Error(),
				})
				return
			}
			metrics.CollaboratorFetches.WithLabelValues(job.path, "ok").Inc()
		}()
	}
	wg.Wait()
	return outcomes
}

// LoadInBackground запускает Load отдельно от запроса входа
func (l *Loader) LoadInBackground(_ context.Context, _ domain.User) {
	if !l.Enabled() {
		return
	}
	go l.Load(context.Background())
}

func load[T any](ctx context.Context, client *http.Client, url string, replace func(context.Context, []T) error) error {
	list, err := fetch[T](ctx, client, url)
	if err != nil {
		return err
	}
	return replace(ctx, list)
}

func fetch[T any](ctx context.Context, client *http.Client, url string) ([]T, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	var out []T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if out == nil {
		return nil, errNotArray
	}
	return out, nil
}
