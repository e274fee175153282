package profiles

import (
	"testing"

	"github.com/goliatone/go-storefront/internal/blocks"
	"github.com/goliatone/go-storefront/internal/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

func TestBSONDocumentRoundTrip(t *testing.T) {
	id := uuid.MustParse("00000000-0000-0000-0000-0000000000b1")
	profile := &Profile{
		Business: domain.Business{
			ID:            id,
			Name:          "Acme",
			Slug:          "acme",
			BusinessHours: domain.DefaultBusinessHours(),
			SameAs:        []string{"https://facebook.com/acme"},
		},
		Pages: []Page{{
			Title:   "Storefront",
			Slug:    "storefront",
			Type:    domain.PageStorefront,
			Enabled: true,
			Settings: PageSettings{
				Blocks: blocks.List{
					blocks.TextBlock{Base: blocks.Base{ID: "t1"}, Title: "Hello"},
					blocks.Unknown{ID: "v1", Type: "video", Fields: map[string]any{"src": "a.mp4"}},
				},
			},
		}},
	}

	doc, err := toBSON(profile)
	if err != nil {
		t.Fatalf("to bson: %v", err)
	}
	if doc[0].Key != mongoIDField || doc[0].Value != id.String() {
		t.Fatalf("expected _id first, got %v", doc[0])
	}

	raw, err := bson.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal bson: %v", err)
	}
	decoded, err := fromBSON(raw)
	if err != nil {
		t.Fatalf("from bson: %v", err)
	}
	if decoded.ID != id || decoded.Name != "Acme" || len(decoded.BusinessHours) != 7 {
		t.Fatalf("unexpected business fields %+v", decoded.Business)
	}
	if len(decoded.Pages) != 1 || len(decoded.Pages[0].Settings.Blocks) != 2 {
		t.Fatalf("unexpected pages %+v", decoded.Pages)
	}
	text, ok := decoded.Pages[0].Settings.Blocks[0].(blocks.TextBlock)
	if !ok || text.Title != "Hello" {
		t.Fatalf("unexpected first block %#v", decoded.Pages[0].Settings.Blocks[0])
	}
	unknown, ok := decoded.Pages[0].Settings.Blocks[1].(blocks.Unknown)
	if !ok || unknown.Fields["src"] != "a.mp4" {
		t.Fatalf("expected unknown block preserved, got %#v", decoded.Pages[0].Settings.Blocks[1])
	}
}
