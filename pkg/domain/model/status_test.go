package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/modassign/pkg/domain/model"
)

func TestStatus_IsValid(t *testing.T) {
	tests := []struct {
		status model.Status
		valid  bool
		set    bool
	}{
		{status: model.StatusNotDownloaded, valid: true, set: true},
		{status: model.StatusDownloading, valid: true, set: true},
		{status: model.StatusDownloaded, valid: true, set: true},
		{status: model.StatusOutdated, valid: true, set: true},
		{status: model.Status("unknown"), valid: false, set: true},
		{status: model.Status(""), valid: false, set: false},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			gt.V(t, tt.status.IsValid()).Equal(tt.valid)
			gt.V(t, tt.status.IsSet()).Equal(tt.set)
		})
	}
}

func TestStatusChangedEvent_Matches(t *testing.T) {
	ev := &model.StatusChangedEvent{SiteID: "s", ComponentID: 1, Component: "c", Status: model.StatusDownloaded}

	gt.True(t, ev.Matches("s", "c", 1))
	gt.False(t, ev.Matches("other", "c", 1))
	gt.False(t, ev.Matches("s", "other", 1))
	gt.False(t, ev.Matches("s", "c", 2))

	var nilEvent *model.StatusChangedEvent
	gt.False(t, nilEvent.Matches("s", "c", 1))
}
