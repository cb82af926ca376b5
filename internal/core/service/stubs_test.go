package service

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/uscl/transaction-tracker/internal/core/domain"
	"github.com/uscl/transaction-tracker/internal/core/ports"
)

var discardLogger = zerolog.Nop()

func paginate[T any](items []T, page ports.PageRequest) []T {
	skip := page.Offset()
	if skip > len(items) {
		return []T{}
	}
	end := skip + page.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[skip:end]
}

// ---------------------------------------------------------------------------
// Admins
// ---------------------------------------------------------------------------

type stubAdminRepo struct {
	admins  map[int64]*domain.Admin
	nextID  int64
	creates int
	deletes int
}

func newStubAdminRepo() *stubAdminRepo {
	return &stubAdminRepo{admins: make(map[int64]*domain.Admin)}
}

func (r *stubAdminRepo) Create(_ context.Context, a *domain.Admin) (*domain.Admin, error) {
	r.creates++
	for _, existing := range r.admins {
		if existing.Username == a.Username {
			return nil, domain.ErrUsernameTaken
		}
	}
	r.nextID++
	clone := *a
	clone.ID = r.nextID
	r.admins[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubAdminRepo) FindByID(_ context.Context, id int64) (*domain.Admin, error) {
	a, ok := r.admins[id]
	if !ok {
		return nil, domain.ErrAdminNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubAdminRepo) FindByUsername(_ context.Context, username string) (*domain.Admin, error) {
	for _, a := range r.admins {
		if a.Username == username {
			clone := *a
			return &clone, nil
		}
	}
	return nil, domain.ErrAdminNotFound
}

func (r *stubAdminRepo) UsernameTaken(_ context.Context, username string, excludeID int64) (bool, error) {
	for _, a := range r.admins {
		if a.Username == username && a.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubAdminRepo) List(_ context.Context, page ports.PageRequest) ([]*domain.Admin, int64, error) {
	all := make([]*domain.Admin, 0, len(r.admins))
	for _, a := range r.admins {
		clone := *a
		all = append(all, &clone)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return paginate(all, page), int64(len(all)), nil
}

func (r *stubAdminRepo) Update(_ context.Context, id int64, username, email string) error {
	a, ok := r.admins[id]
	if !ok {
		return domain.ErrAdminNotFound
	}
	a.Username, a.Email = username, email
	return nil
}

func (r *stubAdminRepo) Delete(_ context.Context, id int64) error {
	r.deletes++
	delete(r.admins, id)
	return nil
}

// ---------------------------------------------------------------------------
// Clients
// ---------------------------------------------------------------------------

type stubClientRepo struct {
	clients map[int64]*domain.Client
	nextID  int64
	deletes int
	updates int
}

func newStubClientRepo() *stubClientRepo {
	return &stubClientRepo{clients: make(map[int64]*domain.Client)}
}

func (r *stubClientRepo) Create(_ context.Context, c *domain.Client) (*domain.Client, error) {
	for _, existing := range r.clients {
		if existing.Name == c.Name && existing.Email == c.Email {
			return nil, domain.ErrClientExists
		}
	}
	r.nextID++
	clone := *c
	clone.ID = r.nextID
	r.clients[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubClientRepo) FindByID(_ context.Context, id int64) (*domain.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubClientRepo) List(_ context.Context, page ports.PageRequest) ([]*domain.Client, int64, error) {
	all := make([]*domain.Client, 0, len(r.clients))
	for _, c := range r.clients {
		clone := *c
		all = append(all, &clone)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return paginate(all, page), int64(len(all)), nil
}

func (r *stubClientRepo) Update(_ context.Context, c *domain.Client) error {
	r.updates++
	clone := *c
	r.clients[c.ID] = &clone
	return nil
}

func (r *stubClientRepo) Delete(_ context.Context, id int64) error {
	r.deletes++
	delete(r.clients, id)
	return nil
}

// ---------------------------------------------------------------------------
// Transactions
// ---------------------------------------------------------------------------

type stubTransactionRepo struct {
	byTracking map[string]*domain.Transaction
	// createErrs is consumed one per Create call before falling back to success.
	createErrs  []error
	createCalls int
	deletes     int
	updates     int
}

func newStubTransactionRepo() *stubTransactionRepo {
	return &stubTransactionRepo{byTracking: make(map[string]*domain.Transaction)}
}

func (r *stubTransactionRepo) Create(_ context.Context, tx *domain.Transaction) error {
	r.createCalls++
	if len(r.createErrs) > 0 {
		err := r.createErrs[0]
		r.createErrs = r.createErrs[1:]
		if err != nil {
			return err
		}
	}
	if _, exists := r.byTracking[tx.TrackingID]; exists {
		return domain.ErrTrackingIDTaken
	}
	clone := *tx
	r.byTracking[tx.TrackingID] = &clone
	return nil
}

func (r *stubTransactionRepo) FindByTrackingID(_ context.Context, trackingID string) (*domain.Transaction, error) {
	tx, ok := r.byTracking[trackingID]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	clone := *tx
	return &clone, nil
}

func (r *stubTransactionRepo) List(_ context.Context, page ports.PageRequest) ([]*domain.Transaction, int64, error) {
	all := make([]*domain.Transaction, 0, len(r.byTracking))
	for _, tx := range r.byTracking {
		clone := *tx
		all = append(all, &clone)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].TrackingID < all[j].TrackingID })
	return paginate(all, page), int64(len(all)), nil
}

func (r *stubTransactionRepo) Update(_ context.Context, tx *domain.Transaction) error {
	r.updates++
	clone := *tx
	r.byTracking[tx.TrackingID] = &clone
	return nil
}

func (r *stubTransactionRepo) Delete(_ context.Context, trackingID string) error {
	r.deletes++
	delete(r.byTracking, trackingID)
	return nil
}

type stubStatusRepo struct{}

func (stubStatusRepo) List(context.Context) ([]domain.Status, error) {
	return []domain.Status{{ID: 1, Name: "Pending"}, {ID: 2, Name: "Processing"}}, nil
}

// ---------------------------------------------------------------------------
// History
// ---------------------------------------------------------------------------

type stubHistoryRepo struct {
	entries []*domain.HistoryEntry
	deletes int
}

func (r *stubHistoryRepo) matching(clientName string) []*domain.HistoryEntry {
	var out []*domain.HistoryEntry
	for _, e := range r.entries {
		if clientName != "" && !strings.Contains(strings.ToLower(e.ClientName), strings.ToLower(clientName)) {
			continue
		}
		clone := *e
		out = append(out, &clone)
	}
	return out
}

func (r *stubHistoryRepo) List(_ context.Context, f ports.HistoryFilter) ([]*domain.HistoryEntry, int64, error) {
	matched := r.matching(f.ClientName)
	return paginate(matched, f.Page), int64(len(matched)), nil
}

func (r *stubHistoryRepo) ListByTrackingID(_ context.Context, trackingID string) ([]*domain.HistoryEntry, error) {
	var out []*domain.HistoryEntry
	for _, e := range r.entries {
		if e.TrackingID == trackingID {
			clone := *e
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubHistoryRepo) CountByTrackingID(ctx context.Context, trackingID string) (int64, error) {
	entries, _ := r.ListByTrackingID(ctx, trackingID)
	return int64(len(entries)), nil
}

func (r *stubHistoryRepo) DeleteByTrackingID(_ context.Context, trackingID string) (int64, error) {
	r.deletes++
	kept := r.entries[:0]
	var n int64
	for _, e := range r.entries {
		if e.TrackingID == trackingID {
			n++
			continue
		}
		kept = append(kept, e)
	}
	r.entries = kept
	return n, nil
}
