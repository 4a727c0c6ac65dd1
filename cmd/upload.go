package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/lepinkainen/videodash/dashboard"
	"github.com/lepinkainen/videodash/media"
	"github.com/lepinkainen/videodash/types"
	"github.com/lepinkainen/videodash/ui"
	"github.com/lepinkainen/videodash/utils"
)

type UploadCmd struct {
	File   string `arg:"" name:"file" help:"Video file to upload" type:"existingfile"`
	Verify bool   `help:"Check the container with ffprobe before uploading"`
}

func (cmd *UploadCmd) Run(appCtx *types.AppContext) error {
	svc, err := newServices(appCtx)
	if err != nil {
		return err
	}
	ctx, cancel := commandContext()
	defer cancel()

	if cmd.Verify {
		if err := utils.ValidateProbeDependency(); err != nil {
			return err
		}
		if err := media.ValidateVideoIntegrity(ctx, cmd.File); err != nil {
			return fmt.Errorf("refusing to upload %s: %w", cmd.File, err)
		}
		details, err := media.Probe(ctx, cmd.File)
		if err != nil {
			return fmt.Errorf("refusing to upload %s: %w", cmd.File, err)
		}
		fmt.Printf("%s\n", ui.InfoStyle.Render(fmt.Sprintf("%s, %s, %s", details.Resolution, details.Codec, details.Duration.Round(time.Second))))
	}

	ctrl := svc.controller(appCtx)
	fmt.Printf("%s\n", ui.BusyStyle.Render("Uploading... Checking Quotas..."))

	var bar *progressbar.ProgressBar
	err = ctrl.Upload(ctx, cmd.File, func(r io.Reader, size int64) io.Reader {
		bar = progressbar.DefaultBytes(size, "uploading")
		rd := progressbar.NewReader(r, bar)
		return &rd
	})
	if bar != nil {
		_ = bar.Finish()
	}

	snap := ctrl.Snapshot()
	if err != nil {
		fmt.Printf("%s\n", ui.ErrorStyle.Render("❌ "+snap.Status.Text))
		return explain(err)
	}

	fmt.Printf("%s\n", ui.SuccessStyle.Render("✅ "+snap.Status.Text))
	if snap.Loaded {
		fmt.Printf("%s\n", ui.InfoStyle.Render(fmt.Sprintf("%d video(s), %s used", len(snap.Videos), dashboard.FormatMB(snap.UsedBytes))))
	}
	return nil
}
