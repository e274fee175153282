package buildercmd

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-storefront/internal/blocks"
	"github.com/goliatone/go-storefront/internal/builder"
	"github.com/goliatone/go-storefront/internal/domain"
	"github.com/google/uuid"
)

const (
	applyEditsMessageType  = "storefront.builder.apply_edits"
	saveSessionMessageType = "storefront.builder.save"
)

// Edit operations understood by ApplyEditsCommand.
const (
	OpAdd      = "add"
	OpRemove   = "remove"
	OpUpdate   = "update"
	OpReorder  = "reorder"
	OpSettings = "settings"
)

// Edit is one builder action replayed against a fresh draft.
type Edit struct {
	Op          string       `json:"op"`
	BlockType   blocks.Type  `json:"block_type,omitempty"`
	BlockID     string       `json:"block_id,omitempty"`
	Patch       blocks.Patch `json:"patch,omitempty"`
	From        int          `json:"from,omitempty"`
	To          int          `json:"to,omitempty"`
	Headline    *string      `json:"headline,omitempty"`
	Description *string      `json:"description,omitempty"`
}

func (e Edit) validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Op, validation.Required, validation.In(OpAdd, OpRemove, OpUpdate, OpReorder, OpSettings)),
		validation.Field(&e.BlockType, validation.When(e.Op == OpAdd, validation.Required)),
		validation.Field(&e.BlockID, validation.When(e.Op == OpRemove || e.Op == OpUpdate, validation.Required)),
		validation.Field(&e.From, validation.Min(0)),
		validation.Field(&e.To, validation.Min(0)),
	)
}

// ApplyEditsCommand replays a batch of edits on one page and saves the result once.
type ApplyEditsCommand struct {
	BusinessID uuid.UUID `json:"business_id"`
	PageType   string    `json:"page_type"`
	Edits      []Edit    `json:"edits"`
}

// Type implements command.Message.
func (ApplyEditsCommand) Type() string { return applyEditsMessageType }

// Validate checks identifiers and every edit before the handler runs.
func (m ApplyEditsCommand) Validate() error {
	errs := validation.Errors{}
	if m.BusinessID == uuid.Nil {
		errs["business_id"] = validation.NewError("storefront.builder.business_id_required", "business_id is required")
	}
	if pt := strings.TrimSpace(m.PageType); pt != "" && !domain.NormalizePageType(pt).Valid() {
		errs["page_type"] = validation.NewError("storefront.builder.page_type_invalid", "page_type is not a known page")
	}
	if len(m.Edits) == 0 {
		errs["edits"] = validation.NewError("storefront.builder.edits_required", "at least one edit is required")
	}
	for i, edit := range m.Edits {
		if err := edit.validate(); err != nil {
			errs[fmt.Sprintf("edits.%d", i)] = err
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SaveSessionCommand persists an open editing session.
type SaveSessionCommand struct {
	Session *builder.Session `json:"-"`
}

// Type implements command.Message.
func (SaveSessionCommand) Type() string { return saveSessionMessageType }

// Validate ensures a session is attached.
func (m SaveSessionCommand) Validate() error {
	return validation.Errors{
		"session": validation.Validate(m.Session, validation.NotNil),
	}.Filter()
}
