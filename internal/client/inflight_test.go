package client

import (
	"context"
	"testing"

	"github.com/journeycircle/api/internal/model"
)

func TestInflight_StartCancelsPredecessor(t *testing.T) {
	f := NewInflight()
	id := model.ProblemTitlesID(1)

	ctx1, release1 := f.Start(context.Background(), id)
	defer release1()

	ctx2, release2 := f.Start(context.Background(), id)
	defer release2()

	select {
	case <-ctx1.Done():
	default:
		t.Error("starting under the same id must cancel the predecessor")
	}
	if ctx2.Err() != nil {
		t.Error("the new request must not be cancelled")
	}
}

func TestInflight_DifferentIDsIndependent(t *testing.T) {
	f := NewInflight()

	ctx1, release1 := f.Start(context.Background(), model.ProblemTitlesID(1))
	defer release1()
	ctx2, release2 := f.Start(context.Background(), model.SolutionTitlesID(1))
	defer release2()

	if ctx1.Err() != nil || ctx2.Err() != nil {
		t.Error("requests under different ids must not interfere")
	}
}

func TestInflight_ReleaseClearsOwnSlotOnly(t *testing.T) {
	f := NewInflight()
	id := model.ProblemTitlesID(1)

	_, release1 := f.Start(context.Background(), id)
	_, release2 := f.Start(context.Background(), id)

	// The superseded request finishing must not clear the newer one's slot
	release1()
	if !f.Active(id) {
		t.Fatal("stale release must not clear the active slot")
	}

	release2()
	if f.Active(id) {
		t.Error("release must clear its own slot")
	}
}

func TestInflight_Cancel(t *testing.T) {
	f := NewInflight()
	id := model.ContentID(9)

	ctx, release := f.Start(context.Background(), id)
	defer release()

	if !f.Cancel(id) {
		t.Fatal("expected cancel to find the in-flight request")
	}
	if ctx.Err() == nil {
		t.Error("cancel must abort the request context")
	}
	if f.Cancel(id) {
		t.Error("second cancel has nothing to abort")
	}
}
