package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/lepinkainen/videodash/dashboard"
	"github.com/lepinkainen/videodash/types"
	"github.com/lepinkainen/videodash/ui"
)

// ListCmd prints the remote collection, optionally narrowed by a search query.
type ListCmd struct {
	Search string `short:"s" help:"Only show videos whose filename contains this text (case-insensitive)"`
	JSON   bool   `name:"json" help:"Print the videos as JSON"`
}

func (cmd *ListCmd) Run(appCtx *types.AppContext) error {
	svc, err := newServices(appCtx)
	if err != nil {
		return err
	}
	ctx, cancel := commandContext()
	defer cancel()

	ctrl := svc.controller(appCtx)
	if err := ctrl.Refresh(ctx); err != nil {
		return explain(err)
	}
	ctrl.SetQuery(cmd.Search)
	snap := ctrl.Snapshot()

	if cmd.JSON {
		return writeVideosJSON(os.Stdout, snap.View)
	}
	printVideoList(os.Stdout, snap, appCtx.Config.StorageQuotaBytes)
	return nil
}

func writeVideosJSON(w io.Writer, videos []dashboard.Video) error {
	if videos == nil {
		videos = []dashboard.Video{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(videos)
}

func printVideoList(w io.Writer, snap dashboard.Snapshot, quota int64) {
	if len(snap.Videos) == 0 {
		fmt.Fprintf(w, "%s\n", ui.InfoStyle.Render("No videos uploaded yet."))
		return
	}
	if len(snap.View) == 0 {
		fmt.Fprintf(w, "%s\n", ui.InfoStyle.Render(fmt.Sprintf("No videos match %q.", snap.Query)))
		return
	}

	for _, v := range snap.View {
		fmt.Fprintf(w, "  %-48s %12s\n", v.DisplayName(), v.SizeMB())
		if v.OriginalName != "" && v.OriginalName != v.Filename {
			fmt.Fprintf(w, "    %s\n", v.Filename)
		}
	}

	summary := fmt.Sprintf("%d of %d video(s), %s used", len(snap.View), len(snap.Videos), dashboard.FormatMB(snap.UsedBytes))
	if quota > 0 {
		summary += " of " + dashboard.FormatMB(quota)
	}
	fmt.Fprintf(w, "\n%s\n", ui.InfoStyle.Render(summary))
}
