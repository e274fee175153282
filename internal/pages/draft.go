package pages

import (
	"strings"

	"github.com/goliatone/go-slug"
	"github.com/goliatone/go-storefront/internal/blocks"
	"github.com/goliatone/go-storefront/internal/domain"
	"github.com/goliatone/go-storefront/internal/fieldsync"
	"github.com/goliatone/go-storefront/internal/logging"
	"github.com/goliatone/go-storefront/internal/ordering"
	"github.com/goliatone/go-storefront/internal/profiles"
	"github.com/goliatone/go-storefront/pkg/interfaces"
)

// Draft is the in-memory working copy of one business profile during an
// editing session. It is not safe for concurrent use.
//
// Every mutation builds the next block list and profile before committing
// either, so a failed edit leaves the draft exactly as it was.
type Draft struct {
	profile  *profiles.Profile
	registry *blocks.Registry
	notifier Notifier
	logger   interfaces.Logger
	validate bool
	dirty    bool
}

// Option customises a draft.
type Option func(*Draft)

// WithNotifier routes edit notices to n.
func WithNotifier(n Notifier) Option {
	return func(d *Draft) {
		if n != nil {
			d.notifier = n
		}
	}
}

// WithLogger sets the draft logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(d *Draft) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithPatchValidation toggles schema validation of block patches.
func WithPatchValidation(enabled bool) Option {
	return func(d *Draft) {
		d.validate = enabled
	}
}

// SettingsPatch updates the SEO fields of a page. Nil fields are left alone.
type SettingsPatch struct {
	Headline    *string
	Description *string
}

// NewDraft starts an editing session over a copy of profile.
func NewDraft(profile *profiles.Profile, registry *blocks.Registry, opts ...Option) (*Draft, error) {
	if registry == nil {
		return nil, ErrRegistryRequired
	}
	working := profile.Clone()
	if working == nil {
		working = &profiles.Profile{}
	}
	d := &Draft{
		profile:  working,
		registry: registry,
		notifier: NoopNotifier{},
		logger:   logging.NoOp(),
		validate: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d, nil
}

// AddBlock appends a default block of blockType to the page, creating the page
// when it does not exist yet.
func (d *Draft) AddBlock(pageType domain.PageType, blockType blocks.Type) (blocks.Block, error) {
	pageType, err := resolvePageType(pageType)
	if err != nil {
		return nil, err
	}
	logger := logging.WithBlockContext(d.logger, string(pageType), "", string(blockType))

	if _, ok := d.registry.Definition(blockType); !ok {
		logger.Warn("pages.block.unknown_type")
		return nil, &blocks.UnknownTypeError{Type: blockType}
	}

	page, idx := d.pageOrNew(pageType)
	if blocks.IsSingleton(blockType) && page.Settings.Blocks.Contains(blockType) {
		conflict := &SingletonConflictError{PageType: pageType, BlockType: blockType}
		d.notifier.Notify(Notice{Level: NoticeError, Message: conflict.Error()})
		logger.Info("pages.block.singleton_conflict")
		return nil, conflict
	}

	block, err := d.newBlock(blockType)
	if err != nil {
		logger.Warn("pages.block.create_failed", "error", err)
		return nil, err
	}

	next := make(blocks.List, 0, len(page.Settings.Blocks)+1)
	next = append(next, page.Settings.Blocks...)
	next = append(next, block)
	page.Settings.Blocks = next
	d.commitPage(idx, page)

	d.notifier.Notify(Notice{Level: NoticeSuccess, Message: addedMessage(blockType)})
	logger.Debug("pages.block.added", "block_id", block.BlockID())
	return blocks.Clone(block), nil
}

// RemoveBlock drops the block with id from the page. Unknown pages or ids are
// ignored. It reports whether a block was removed.
func (d *Draft) RemoveBlock(pageType domain.PageType, id string) bool {
	idx := d.profile.PageIndex(domain.NormalizePageType(string(pageType)))
	if idx < 0 {
		return false
	}
	page := d.profile.Pages[idx]
	pos := page.Settings.Blocks.IndexOf(id)
	if pos < 0 {
		return false
	}

	next := make(blocks.List, 0, len(page.Settings.Blocks)-1)
	next = append(next, page.Settings.Blocks[:pos]...)
	next = append(next, page.Settings.Blocks[pos+1:]...)
	page.Settings.Blocks = next
	d.commitPage(idx, page)

	d.notifier.Notify(Notice{Level: NoticeInfo, Message: "Block removed"})
	logging.WithBlockContext(d.logger, string(page.Type), id, "").Debug("pages.block.removed")
	return true
}

// UpdateBlock merges patch into the block with id and writes any synced
// fields through to the business profile. Unknown pages or ids are ignored.
// An invalid patch is rejected and nothing changes.
func (d *Draft) UpdateBlock(pageType domain.PageType, id string, patch blocks.Patch) error {
	idx := d.profile.PageIndex(domain.NormalizePageType(string(pageType)))
	if idx < 0 {
		return nil
	}
	page := d.profile.Pages[idx]
	pos := page.Settings.Blocks.IndexOf(id)
	if pos < 0 {
		return nil
	}
	current := page.Settings.Blocks[pos]
	logger := logging.WithBlockContext(d.logger, string(page.Type), id, string(current.BlockType()))

	if _, opaque := current.(blocks.Unknown); d.validate && !opaque {
		if err := d.registry.ValidatePatch(current.BlockType(), patch); err != nil {
			logger.Warn("pages.block.patch_rejected", "error", err)
			return err
		}
	}
	merged, err := blocks.ApplyPatch(current, patch)
	if err != nil {
		logger.Warn("pages.block.patch_rejected", "error", err)
		return err
	}
	business, synced := fieldsync.Apply(d.profile.Business, merged, patch)

	next := page.Settings.Blocks.Clone()
	next[pos] = merged
	page.Settings.Blocks = next
	d.commitPage(idx, page)
	if synced {
		d.profile.Business = business
	}

	logger.Debug("pages.block.updated", "fields", patch.Keys(), "synced", synced)
	return nil
}

// Reorder moves the block at src to dst on the page.
func (d *Draft) Reorder(pageType domain.PageType, src, dst int) error {
	idx := d.profile.PageIndex(domain.NormalizePageType(string(pageType)))
	var current blocks.List
	if idx >= 0 {
		current = d.profile.Pages[idx].Settings.Blocks
	}
	moved, err := ordering.Move(current, src, dst)
	if err != nil {
		return err
	}
	page := d.profile.Pages[idx]
	page.Settings.Blocks = moved
	d.commitPage(idx, page)

	logging.WithBlockContext(d.logger, string(page.Type), "", "").Debug("pages.block.reordered", "from", src, "to", dst)
	return nil
}

// UpdatePageSettings edits the SEO fields of the page, creating it if needed.
func (d *Draft) UpdatePageSettings(pageType domain.PageType, patch SettingsPatch) error {
	pageType, err := resolvePageType(pageType)
	if err != nil {
		return err
	}
	page, idx := d.pageOrNew(pageType)
	if patch.Headline != nil {
		page.Settings.Headline = *patch.Headline
	}
	if patch.Description != nil {
		page.Settings.Description = *patch.Description
	}
	page.Settings.Blocks = page.Settings.Blocks.Clone()
	d.commitPage(idx, page)
	return nil
}

// UpdateBusiness applies a direct edit to the canonical business fields.
// Blocks already on a page keep their values.
func (d *Draft) UpdateBusiness(edit func(*domain.Business)) {
	if edit == nil {
		return
	}
	next := d.profile.Business.Clone()
	edit(&next)
	d.profile.Business = next
	d.dirty = true
}

// Blocks returns a copy of the page's block list. Missing pages yield an empty list.
func (d *Draft) Blocks(pageType domain.PageType) blocks.List {
	page, ok := d.Page(pageType)
	if !ok {
		return blocks.List{}
	}
	return page.Settings.Blocks
}

// Page returns a copy of the page.
func (d *Draft) Page(pageType domain.PageType) (profiles.Page, bool) {
	return d.profile.Page(domain.NormalizePageType(string(pageType)))
}

// Profile returns a copy of the working profile.
func (d *Draft) Profile() *profiles.Profile {
	return d.profile.Clone()
}

// Dirty reports whether the draft has unsaved edits.
func (d *Draft) Dirty() bool {
	return d.dirty
}

// MarkClean records that the current state has been persisted.
func (d *Draft) MarkClean() {
	d.dirty = false
}

// Notify forwards a notice to the draft's notifier.
func (d *Draft) Notify(level NoticeLevel, message string) {
	d.notifier.Notify(Notice{Level: level, Message: message})
}

// newBlock creates a default block whose id no block in the profile uses yet.
// Each collision draws a fresh id; a generator that keeps repeating taken ids
// is reported once every existing id has been tried.
func (d *Draft) newBlock(blockType blocks.Type) (blocks.Block, error) {
	taken := make(map[string]struct{})
	for _, page := range d.profile.Pages {
		for _, id := range page.Settings.Blocks.IDs() {
			taken[id] = struct{}{}
		}
	}
	for range len(taken) + 1 {
		block, err := d.registry.CreateDefault(blockType, blocks.Context{Business: d.profile.Business})
		if err != nil {
			return nil, err
		}
		if _, used := taken[block.BlockID()]; !used {
			return block, nil
		}
	}
	return nil, ErrBlockIDTaken
}

func (d *Draft) pageOrNew(pageType domain.PageType) (profiles.Page, int) {
	if idx := d.profile.PageIndex(pageType); idx >= 0 {
		return d.profile.Pages[idx], idx
	}
	return newPage(pageType), -1
}

// commitPage stores page at idx, appending it when idx is negative. The pages
// slice is replaced, never written in place.
func (d *Draft) commitPage(idx int, page profiles.Page) {
	next := make([]profiles.Page, len(d.profile.Pages), len(d.profile.Pages)+1)
	copy(next, d.profile.Pages)
	if idx < 0 {
		next = append(next, page)
	} else {
		next[idx] = page
	}
	d.profile.Pages = next
	d.dirty = true
}

func newPage(pageType domain.PageType) profiles.Page {
	name := string(pageType)
	pageSlug, err := slug.Normalize(name)
	if err != nil || pageSlug == "" {
		pageSlug = name
	}
	return profiles.Page{
		Title:   strings.ToUpper(name[:1]) + name[1:],
		Slug:    pageSlug,
		Type:    pageType,
		Enabled: true,
		Settings: profiles.PageSettings{
			Blocks: blocks.List{},
		},
	}
}

func resolvePageType(pageType domain.PageType) (domain.PageType, error) {
	normalized := domain.NormalizePageType(string(pageType))
	if !normalized.Valid() {
		return "", ErrInvalidPageType
	}
	return normalized, nil
}

func addedMessage(t blocks.Type) string {
	return strings.ReplaceAll(string(t), "_", " ") + " block added!"
}
