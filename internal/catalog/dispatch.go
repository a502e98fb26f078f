package catalog

import (
	"context"
	"fmt"

	"catalog-crud/internal/model"
)

// Request is a user action handed to Dispatch.
type Request interface {
	isRequest()
}

type LoadRequest struct{}

type CreateRequest struct{ Draft Draft }

// SubmitRequest is a product form submission; see Manager.Submit.
type SubmitRequest struct{ Draft Draft }

type UpdateRequest struct {
	ID     string
	Fields model.ProductPatch
}

type DeleteRequest struct{ ID string }

type ConfirmDeleteRequest struct{}

type CancelDeleteRequest struct{}

type SeedRequest struct{}

type SetFilterRequest struct{ Term string }

type SetSortRequest struct{ Key SortKey }

type BeginEditRequest struct{ Cell CellKey }

type CommitEditRequest struct {
	Cell  CellKey
	Value string
}

type CancelEditRequest struct{ Cell CellKey }

func (LoadRequest) isRequest()          {}
func (CreateRequest) isRequest()        {}
func (SubmitRequest) isRequest()        {}
func (UpdateRequest) isRequest()        {}
func (DeleteRequest) isRequest()        {}
func (ConfirmDeleteRequest) isRequest() {}
func (CancelDeleteRequest) isRequest()  {}
func (SeedRequest) isRequest()          {}
func (SetFilterRequest) isRequest()     {}
func (SetSortRequest) isRequest()       {}
func (BeginEditRequest) isRequest()     {}
func (CommitEditRequest) isRequest()    {}
func (CancelEditRequest) isRequest()    {}

// Dispatch routes a request to the matching operation. Results reach the
// presentation layer through Subscribe; the error is returned for callers
// that want it.
func (m *Manager) Dispatch(ctx context.Context, req Request) error {
	var err error
	switch r := req.(type) {
	case LoadRequest:
		err = m.Load(ctx)
	case CreateRequest:
		_, err = m.Create(ctx, r.Draft)
	case SubmitRequest:
		_, err = m.Submit(ctx, r.Draft)
	case UpdateRequest:
		_, err = m.Update(ctx, r.ID, r.Fields)
	case DeleteRequest:
		err = m.Remove(r.ID)
	case ConfirmDeleteRequest:
		err = m.ConfirmRemove(ctx)
	case CancelDeleteRequest:
		m.CancelRemove()
	case SeedRequest:
		_, err = m.Seed(ctx)
	case SetFilterRequest:
		m.SetFilter(r.Term)
		m.emit(Event{Type: EventSnapshotChanged})
	case SetSortRequest:
		m.SetSort(r.Key)
		m.emit(Event{Type: EventSnapshotChanged})
	case BeginEditRequest:
		_, err = m.BeginEdit(r.Cell)
	case CommitEditRequest:
		_, err = m.CommitEdit(ctx, r.Cell, r.Value)
	case CancelEditRequest:
		m.CancelEdit(r.Cell)
	default:
		err = fmt.Errorf("unknown request %T", req)
	}
	return err
}
