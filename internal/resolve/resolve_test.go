package resolve

import (
	"errors"
	"strings"
	"testing"
)

var profiles = []Entry{
	{ID: 1, Name: "Any"},
	{ID: 3, Name: "HD-1080p"},
	{ID: 5, Name: "Ultra-HD"},
}

func TestNameOrIDNumericPassthrough(t *testing.T) {
	t.Parallel()
	id, err := NameOrID("3", profiles, "quality profile")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 3 {
		t.Errorf("expected 3, got %d", id)
	}
}

func TestNameOrIDNumericUnknown(t *testing.T) {
	t.Parallel()
	_, err := NameOrID("99", profiles, "quality profile")
	if err == nil {
		t.Fatal("expected error")
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %T", err)
	}
	if err.Error() != "quality profile with ID 99 not found" {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestNameOrIDExactNameCaseInsensitive(t *testing.T) {
	t.Parallel()
	id, err := NameOrID("hd-1080p", profiles, "quality profile")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 3 {
		t.Errorf("expected 3, got %d", id)
	}
}

func TestNameOrIDNoSubstringMatching(t *testing.T) {
	t.Parallel()
	// "HD" is a substring of two names but an exact match of none.
	_, err := NameOrID("HD", profiles, "quality profile")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	msg := err.Error()
	for _, want := range []string{"1: Any", "3: HD-1080p", "5: Ultra-HD"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message should enumerate candidates, missing %q: %s", want, msg)
		}
	}
}

func TestNameOrIDDigitNameTreatedAsID(t *testing.T) {
	t.Parallel()
	// An all-digit token never matches by name, even when a name is digits.
	entries := []Entry{{ID: 1, Name: "2160"}}
	_, err := NameOrID("2160", entries, "quality profile")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}

	// A token with a non-digit is a name: "4k" resolves by name.
	entries = []Entry{{ID: 3, Name: "4K"}}
	id, err := NameOrID("4k", entries, "quality profile")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 3 {
		t.Errorf("expected 3, got %d", id)
	}
}

func TestPathOrIDSubstring(t *testing.T) {
	t.Parallel()
	folders := []Entry{
		{ID: 1, Name: "/mnt/media/tv"},
		{ID: 2, Name: "/mnt/media/movies"},
	}
	id, err := PathOrID("/TV", folders, "root folder")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 1 {
		t.Errorf("expected 1, got %d", id)
	}
}

func TestPathOrIDAmbiguous(t *testing.T) {
	t.Parallel()
	folders := []Entry{
		{ID: 1, Name: "/mnt/media/tv"},
		{ID: 2, Name: "/mnt/media/movies"},
	}
	_, err := PathOrID("/m", folders, "root folder")
	if err == nil {
		t.Fatal("expected error")
	}
	var amb *AmbiguousError
	if !errors.As(err, &amb) {
		t.Fatalf("expected AmbiguousError, got %T", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "use the numeric ID instead") {
		t.Errorf("message should suggest a numeric ID: %s", msg)
	}
	if !strings.Contains(msg, "1: /mnt/media/tv") || !strings.Contains(msg, "2: /mnt/media/movies") {
		t.Errorf("message should enumerate matches: %s", msg)
	}
}

func TestLookupEmptyToken(t *testing.T) {
	t.Parallel()
	_, err := NameOrID("", profiles, "quality profile")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestLookupEmptyEntries(t *testing.T) {
	t.Parallel()
	_, err := NameOrID("Any", nil, "tag")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if !strings.Contains(err.Error(), `no tag matching "Any"`) {
		t.Errorf("unexpected message: %v", err)
	}
}
