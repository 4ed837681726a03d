package api

import (
	"testing"

	"github.com/Copay-Africa/copay-administration-sub000/internal/model"
)

func TestDecodeListBareArray(t *testing.T) {
	body := []byte(`[{"id":"u1"},{"id":"u2"}]`)

	out, err := decodeList[model.User](body)
	if err != nil {
		t.Fatalf("decodeList failed: %v", err)
	}
	if len(out.Items) != 2 {
		t.Fatalf("Items: got %d, want 2", len(out.Items))
	}
	if out.TotalCount != 2 {
		t.Errorf("TotalCount: got %d, want 2", out.TotalCount)
	}
}

func TestDecodeListEnvelope(t *testing.T) {
	body := []byte(`{"data":[{"id":"u1"}],"meta":{"total":57,"page":2,"limit":20}}`)

	out, err := decodeList[model.User](body)
	if err != nil {
		t.Fatalf("decodeList failed: %v", err)
	}
	if len(out.Items) != 1 {
		t.Fatalf("Items: got %d, want 1", len(out.Items))
	}
	if out.TotalCount != 57 {
		t.Errorf("TotalCount: got %d, want 57", out.TotalCount)
	}
	if out.Meta.Page != 2 {
		t.Errorf("Meta.Page: got %d, want 2", out.Meta.Page)
	}
}

func TestDecodeListEnvelopeWithoutMeta(t *testing.T) {
	body := []byte(`{"data":[{"id":"u1"},{"id":"u2"},{"id":"u3"}]}`)

	out, err := decodeList[model.User](body)
	if err != nil {
		t.Fatalf("decodeList failed: %v", err)
	}
	if out.TotalCount != 3 {
		t.Errorf("TotalCount: got %d, want 3", out.TotalCount)
	}
}

func TestDecodeListLeadingWhitespace(t *testing.T) {
	body := []byte("\n\t [{\"id\":\"u1\"}]")

	out, err := decodeList[model.User](body)
	if err != nil {
		t.Fatalf("decodeList failed: %v", err)
	}
	if len(out.Items) != 1 {
		t.Errorf("Items: got %d, want 1", len(out.Items))
	}
}

func TestDecodeListRejectsOtherShapes(t *testing.T) {
	for _, body := range []string{`"surprise"`, `42`, ``} {
		if _, err := decodeList[model.User]([]byte(body)); err == nil {
			t.Errorf("decodeList(%q): expected error, got nil", body)
		}
	}
}
