// Package dictionary pages through a user's saved words with search and
// sorting.
package dictionary

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/kheyfetsdan/wordsaveriii/internal/client"
	"github.com/kheyfetsdan/wordsaveriii/internal/domain"
)

// DefaultPageSize is used when the pager is created with size zero.
const DefaultPageSize = domain.DefaultPageSize

// Lister fetches one page of words. *client.Client implements it.
type Lister interface {
	ListWords(ctx context.Context, req client.ListRequest) (*client.WordList, error)
}

var _ Lister = (*client.Client)(nil)

// View is what the pager currently shows.
type View struct {
	Query      string
	Sort       domain.SortKey
	Page       int
	PageSize   int
	Words      []client.Word
	Total      int
	TotalPages int
	HasPrev    bool
	HasNext    bool
	// Err is the last fetch failure. The previous words stay visible.
	Err error
}

// Pager holds the query, sort and page of a dictionary listing. It is safe
// for concurrent use. When fetches overlap, the last one issued wins and
// results of earlier ones are discarded.
type Pager struct {
	lister   Lister
	pageSize int
	logger   *slog.Logger

	mu    sync.Mutex
	seq   uint64
	query string
	sort  domain.SortKey
	page  int
	words []client.Word
	total int
	err   error
}

// NewPager creates a pager sorted by word ascending. Nothing is fetched
// until Refresh or another operation is called.
func NewPager(lister Lister, pageSize int, logger *slog.Logger) (*Pager, error) {
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}
	if pageSize < 1 || pageSize > domain.MaxPageSize {
		return nil, fmt.Errorf("page size must be between 1 and %d, got %d", domain.MaxPageSize, pageSize)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pager{
		lister:   lister,
		pageSize: pageSize,
		logger:   logger.With("component", "dictionary"),
		sort:     domain.DefaultSort,
	}, nil
}

// View returns a copy of the current state.
func (p *Pager) View() View {
	p.mu.Lock()
	defer p.mu.Unlock()

	pages := p.totalPagesLocked()
	return View{
		Query:      p.query,
		Sort:       p.sort,
		Page:       p.page,
		PageSize:   p.pageSize,
		Words:      append([]client.Word(nil), p.words...),
		Total:      p.total,
		TotalPages: pages,
		HasPrev:    p.page > 0,
		HasNext:    p.page+1 < pages,
		Err:        p.err,
	}
}

// TotalPages is ceil(total / pageSize).
func (p *Pager) TotalPages() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.totalPagesLocked()
}

// HasPrev reports whether Prev would move.
func (p *Pager) HasPrev() bool {
	return p.View().HasPrev
}

// HasNext reports whether Next would move.
func (p *Pager) HasNext() bool {
	return p.View().HasNext
}

// Err returns the last fetch failure, or nil.
func (p *Pager) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// SetQuery filters by a word or translation substring and returns to the
// first page.
func (p *Pager) SetQuery(ctx context.Context, q string) error {
	req := p.request()
	req.Search = q
	req.Page = 0
	return p.fetch(ctx, req)
}

// SetSort replaces the sort order and returns to the first page.
func (p *Pager) SetSort(ctx context.Context, key domain.SortKey) error {
	if err := key.Validate(); err != nil {
		return err
	}
	req := p.request()
	req.Sort = key
	req.Page = 0
	return p.fetch(ctx, req)
}

// ToggleSort flips the direction of the active field, or switches to field
// ascending.
func (p *Pager) ToggleSort(ctx context.Context, field domain.SortField) error {
	return p.SetSort(ctx, p.request().Sort.Toggle(field))
}

// SetPage jumps to page n, clamped to the known range.
func (p *Pager) SetPage(ctx context.Context, n int) error {
	p.mu.Lock()
	req := p.requestLocked()
	req.Page = clamp(n, p.totalPagesLocked())
	p.mu.Unlock()
	return p.fetch(ctx, req)
}

// Next moves forward one page. On the last page it does nothing.
func (p *Pager) Next(ctx context.Context) error {
	p.mu.Lock()
	req := p.requestLocked()
	last := req.Page+1 >= p.totalPagesLocked()
	p.mu.Unlock()

	if last {
		return nil
	}
	req.Page++
	return p.fetch(ctx, req)
}

// Prev moves back one page. On the first page it does nothing.
func (p *Pager) Prev(ctx context.Context) error {
	req := p.request()
	if req.Page == 0 {
		return nil
	}
	req.Page--
	return p.fetch(ctx, req)
}

// Refresh fetches the current page again.
func (p *Pager) Refresh(ctx context.Context) error {
	return p.fetch(ctx, p.request())
}

// fetch loads req and, on success, makes it the current state. A failure
// only records the error. When the requested page no longer exists, for
// example after deleting the last word on it, the last existing page is
// loaded instead.
func (p *Pager) fetch(ctx context.Context, req client.ListRequest) error {
	p.mu.Lock()
	p.seq++
	seq := p.seq
	p.mu.Unlock()

	list, err := p.lister.ListWords(ctx, req)
	if err == nil && len(list.Words) == 0 && req.Page > 0 && list.Total > 0 {
		req.Page = clamp(req.Page, pages(list.Total, req.PageSize))
		list, err = p.lister.ListWords(ctx, req)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if seq != p.seq {
		p.logger.Debug("fetch superseded", "page", req.Page, "query", req.Search)
		return err
	}
	if err != nil {
		p.err = err
		p.logger.Debug("fetch failed", "page", req.Page, "error", err)
		return err
	}

	p.err = nil
	p.query = req.Search
	p.sort = req.Sort
	p.page = req.Page
	p.words = list.Words
	p.total = list.Total
	return nil
}

func (p *Pager) request() client.ListRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.requestLocked()
}

func (p *Pager) requestLocked() client.ListRequest {
	return client.ListRequest{
		Search:   p.query,
		Sort:     p.sort,
		Page:     p.page,
		PageSize: p.pageSize,
	}
}

func (p *Pager) totalPagesLocked() int {
	return pages(p.total, p.pageSize)
}

func pages(total, size int) int {
	if total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

func clamp(n, totalPages int) int {
	if n >= totalPages {
		n = totalPages - 1
	}
	if n < 0 {
		n = 0
	}
	return n
}
