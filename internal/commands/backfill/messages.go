package backfillcmd

import (
	"github.com/cloudmlm/go-sitecms/internal/backfill"
	"github.com/cloudmlm/go-sitecms/internal/content"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const runMessageType = "site.backfill.run"

// ResultCallback receives the report of a completed run.
type ResultCallback func(backfill.Report)

// RunBackfillCommand translates every default-locale record of Kind into
// the missing locales, or every locale when Overwrite is set.
type RunBackfillCommand struct {
	Kind           string         `json:"kind"`
	Overwrite      bool           `json:"overwrite,omitempty"`
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (RunBackfillCommand) Type() string { return runMessageType }

func (cmd RunBackfillCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Kind, validation.Required, validation.By(func(value any) error {
			if _, err := content.ParseKind(value.(string)); err != nil {
				return validation.NewError("site.backfill.kind_invalid", "kind is not a known content collection")
			}
			return nil
		})),
	)
}
