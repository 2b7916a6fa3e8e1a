package dashboard

import (
	"context"
	"net/http"

	"github.com/yusaku0324/osakamenesu-sub000/internal/apiclient"
	"github.com/yusaku0324/osakamenesu-sub000/internal/dtos"
	"github.com/yusaku0324/osakamenesu-sub000/internal/utils"
)

// submitVersioned runs one optimistic-concurrency write: the payload carries
// the last-known updated_at token, and a 409 means another session committed
// first. The conflict result always carries a current snapshot for the
// caller to re-render from:
//
//  1. preferably the one embedded in the 409 body (detail.current),
//  2. else recovered with exactly one follow-up GET of the same path,
//  3. else synthesized from the submitted values, flagged Unconfirmed since
//     it is not actually the server's state.
//
// The caller must discard local edits on conflict and obtain a fresh token
// before resubmitting; a stale token is never reusable.
func submitVersioned[T dtos.Versioned](
	ctx context.Context,
	api *apiclient.Client,
	method, path string,
	payload T,
	opts *apiclient.RequestOptions,
	success ...int,
) apiclient.Result[T] {
	ex, err := api.Exchange(ctx, method, path, payload, opts, success...)
	res := apiclient.MapResult[T](ex, err)
	if res.Status != apiclient.StatusConflict || res.Current != nil {
		return res
	}

	gex, gerr := api.Exchange(ctx, http.MethodGet, path, nil, opts, http.StatusOK)
	recovered := apiclient.MapResult[T](gex, gerr)
	if recovered.Status == apiclient.StatusSuccess {
		current := recovered.Data
		res.Current = &current
		return res
	}

	utils.Logger.Warnf("conflict on %s %s (token %s) with no recoverable snapshot, echoing submitted values", method, path, payload.Version())
	snapshot := payload
	res.Current = &snapshot
	res.Unconfirmed = true
	return res
}
