package dictionary_test

import (
	"testing"

	"github.com/mwinuka/setshard/internal/dictionary"
)

func Test_FindOrCreateReportsCreation(t *testing.T) {
	d := dictionary.New()
	_, created := d.FindOrCreate("k")
	if !created {
		t.Fatal("expected first FindOrCreate to report creation")
	}
	_, created = d.FindOrCreate("k")
	if created {
		t.Fatal("expected second FindOrCreate to find the existing entry")
	}
}

func Test_DelRemovesKey(t *testing.T) {
	d := dictionary.New()
	d.FindOrCreate("k")
	d.Del("k")
	if d.Exists("k") {
		t.Fatal("expected key to be gone after Del")
	}
}

func Test_FindMissingKey(t *testing.T) {
	d := dictionary.New()
	if _, ok := d.Find("missing"); ok {
		t.Fatal("expected Find on a missing key to report false")
	}
}
