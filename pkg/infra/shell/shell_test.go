package shell_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/modassign/pkg/domain/interfaces"
	"github.com/m-mizutani/modassign/pkg/domain/model"
	"github.com/m-mizutani/modassign/pkg/infra/shell"
)

func TestNotifier_ConfirmDownloadSize(t *testing.T) {
	tests := []struct {
		name     string
		limit    int64
		size     *model.DownloadSize
		declined bool
	}{
		{name: "no limit", limit: 0, size: &model.DownloadSize{Size: 1 << 30}},
		{name: "under limit", limit: 100, size: &model.DownloadSize{Size: 99}},
		{name: "at limit", limit: 100, size: &model.DownloadSize{Size: 100}},
		{name: "over limit", limit: 100, size: &model.DownloadSize{Size: 101}, declined: true},
		{name: "unknown size", limit: 100, size: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := shell.NewNotifier(tt.limit)
			err := n.ConfirmDownloadSize(context.Background(), tt.size)
			if tt.declined {
				gt.True(t, errors.Is(err, interfaces.ErrDownloadDeclined))
			} else {
				gt.NoError(t, err)
			}
		})
	}
}

func TestNotifier_ShowErrorModal(t *testing.T) {
	n := shell.NewNotifier(0)
	ctx := context.Background()

	n.ShowErrorModal(ctx, "core.errordownloading", true)
	n.ShowErrorModal(ctx, "quota exceeded", false)

	got := n.Notifications()
	gt.A(t, got).Length(2)
	gt.V(t, got[0]).Equal(model.Notification{Message: "core.errordownloading", IsKey: true})
	gt.V(t, got[1]).Equal(model.Notification{Message: "quota exceeded", IsKey: false})
}

func TestNotifier_KeepsRecentNotifications(t *testing.T) {
	n := shell.NewNotifier(0)
	for i := range 150 {
		n.ShowErrorModal(context.Background(), fmt.Sprintf("error %d", i), false)
	}

	got := n.Notifications()
	gt.A(t, got).Length(100)
	gt.V(t, got[0].Message).Equal("error 50")
}

func TestRouter_Go(t *testing.T) {
	r := shell.NewRouter()
	ctx := context.Background()

	gt.NoError(t, r.Go(ctx, "site.mod_assign", map[string]any{"courseId": int64(2)}))
	gt.Error(t, r.Go(ctx, "", nil))

	got := r.Navigations()
	gt.A(t, got).Length(1)
	gt.V(t, got[0].Route).Equal("site.mod_assign")
}

func TestIcons_GetModuleIconSrc(t *testing.T) {
	gt.V(t, shell.NewIcons("").GetModuleIconSrc("assign")).Equal("assets/img/mod/assign.svg")
	gt.V(t, shell.NewIcons("/static").GetModuleIconSrc("")).Equal("/static/external-tool.svg")
}
