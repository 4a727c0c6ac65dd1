package cmd

import (
	"fmt"

	"github.com/lepinkainen/videodash/types"
)

// StreamCmd prints a playback URL that can be opened in a media player.
type StreamCmd struct {
	File string `arg:"" name:"filename" help:"Server filename of the video"`
}

func (cmd *StreamCmd) Run(appCtx *types.AppContext) error {
	svc, err := newServices(appCtx)
	if err != nil {
		return err
	}
	url, err := svc.client.StreamURL(cmd.File)
	if err != nil {
		return explain(err)
	}
	fmt.Println(url)
	return nil
}
