package dashboard

import (
	"context"
	"slices"
	"sync"

	"github.com/yusaku0324/osakamenesu-sub000/internal/apiclient"
	"github.com/yusaku0324/osakamenesu-sub000/internal/dtos"
)

// orderStep leaves gaps between assigned display_order values so a future
// manual insert does not force renumbering the whole roster.
const orderStep = 10

// ReorderController owns the locally-rendered roster order. A move is
// applied to local state immediately (optimistic), persisted as a full
// display_order assignment, and rolled back to the pre-move snapshot if
// persistence does not succeed. State swaps happen under a lock so a
// concurrent Items() never observes a partially-applied permutation.
type ReorderController struct {
	mu         sync.Mutex
	therapists *TherapistClient
	shopID     string
	opts       *apiclient.RequestOptions
	items      []dtos.TherapistRecord
}

func NewReorderController(tc *TherapistClient, shopID string, initial []dtos.TherapistRecord, opts *apiclient.RequestOptions) *ReorderController {
	return &ReorderController{
		therapists: tc,
		shopID:     shopID,
		opts:       opts,
		items:      slices.Clone(initial),
	}
}

// Items returns the roster as currently rendered.
func (rc *ReorderController) Items() []dtos.TherapistRecord {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return slices.Clone(rc.items)
}

// Move swaps the item at index with its neighbour at index+delta. Out-of-range
// moves are a no-op success. On any non-success outcome (including a
// cancelled context surfacing as the error variant) the pre-move order is
// restored exactly; on success local state is replaced with the server's
// canonical roster.
func (rc *ReorderController) Move(ctx context.Context, index, delta int) apiclient.Result[dtos.TherapistList] {
	rc.mu.Lock()
	target := index + delta
	if delta == 0 || index < 0 || index >= len(rc.items) || target < 0 || target >= len(rc.items) {
		current := dtos.TherapistList{Therapists: slices.Clone(rc.items)}
		rc.mu.Unlock()
		return apiclient.Result[dtos.TherapistList]{Status: apiclient.StatusSuccess, Data: current}
	}

	snapshot := slices.Clone(rc.items)
	rc.items[index], rc.items[target] = rc.items[target], rc.items[index]
	assignments := make([]dtos.ReorderAssignment, len(rc.items))
	for i, item := range rc.items {
		assignments[i] = dtos.ReorderAssignment{ID: item.ID, DisplayOrder: (i + 1) * orderStep}
	}
	rc.mu.Unlock()

	res := rc.therapists.Reorder(ctx, rc.shopID, assignments, rc.opts)

	rc.mu.Lock()
	defer rc.mu.Unlock()
	if res.Status == apiclient.StatusSuccess {
		rc.items = slices.Clone(res.Data.Therapists)
	} else {
		rc.items = snapshot
	}
	return res
}
