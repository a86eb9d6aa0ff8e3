package setops_test

import (
	"sort"
	"strconv"
	"testing"

	"github.com/mwinuka/setshard/internal/constants"
	"github.com/mwinuka/setshard/internal/dictionary"
	"github.com/mwinuka/setshard/internal/opresult"
	"github.com/mwinuka/setshard/internal/setops"
	"github.com/mwinuka/setshard/internal/setval"
)

const maxIntset = 512

func Test_OpAddCreatesIntSetForAllIntegerValues(t *testing.T) {
	d := dictionary.New()
	res := setops.OpAdd(d, "s", []string{"1", "2", "3"}, false, maxIntset)
	if res.Status != opresult.OK || res.Count != 3 {
		t.Fatalf("expected OK/3, got %+v", res)
	}
	entry, _ := d.Find("s")
	sv := entry.Value.(*setval.SetValue)
	if sv.Encoding != setval.EncodingIntSet {
		t.Fatalf("expected IntSet encoding, got %v", sv.Encoding)
	}
}

func Test_OpAddUpgradesToFlatSetOnNonInteger(t *testing.T) {
	d := dictionary.New()
	setops.OpAdd(d, "s", []string{"1", "2", "3"}, false, maxIntset)
	res := setops.OpAdd(d, "s", []string{"hi"}, false, maxIntset)
	if res.Status != opresult.OK || res.Count != 1 {
		t.Fatalf("expected OK/1, got %+v", res)
	}
	entry, _ := d.Find("s")
	sv := entry.Value.(*setval.SetValue)
	if sv.Encoding != setval.EncodingFlatSet {
		t.Fatal("expected upgrade to FlatSet")
	}
	if sv.Size() != 4 {
		t.Fatalf("expected size 4, got %d", sv.Size())
	}
}

func Test_OpAddUpgradesWhenPastMaxIntsetEntries(t *testing.T) {
	d := dictionary.New()
	setops.OpAdd(d, "s", []string{"1", "2", "3", "4"}, false, 4)
	res := setops.OpAdd(d, "s", []string{"5"}, false, 4)
	if res.Status != opresult.OK || res.Count != 1 {
		t.Fatalf("expected OK/1, got %+v", res)
	}
	entry, _ := d.Find("s")
	sv := entry.Value.(*setval.SetValue)
	if sv.Encoding != setval.EncodingFlatSet {
		t.Fatal("expected upgrade to FlatSet past the cardinality cap")
	}
	if sv.Size() != 5 {
		t.Fatalf("expected size 5, got %d", sv.Size())
	}
}

// Test_OpAddHardCapsRegardlessOfConfiguredLimit exercises invariant 2's
// "bounded above by 65536 regardless of configuration": a caller asking for
// a limit far past constants.MaxIntsetEntriesHardCap still upgrades to
// FlatSet exactly at the hard cap, not at the requested limit.
func Test_OpAddHardCapsRegardlessOfConfiguredLimit(t *testing.T) {
	d := dictionary.New()
	vals := make([]string, constants.MaxIntsetEntriesHardCap)
	for i := range vals {
		vals[i] = strconv.Itoa(i)
	}
	res := setops.OpAdd(d, "s", vals, false, 10_000_000)
	if res.Status != opresult.OK || res.Count != constants.MaxIntsetEntriesHardCap {
		t.Fatalf("expected OK/%d, got %+v", constants.MaxIntsetEntriesHardCap, res)
	}
	entry, _ := d.Find("s")
	sv := entry.Value.(*setval.SetValue)
	if sv.Encoding != setval.EncodingIntSet {
		t.Fatal("expected IntSet encoding at exactly the hard cap")
	}

	res = setops.OpAdd(d, "s", []string{strconv.Itoa(constants.MaxIntsetEntriesHardCap)}, false, 10_000_000)
	if res.Status != opresult.OK || res.Count != 1 {
		t.Fatalf("expected OK/1, got %+v", res)
	}
	entry, _ = d.Find("s")
	sv = entry.Value.(*setval.SetValue)
	if sv.Encoding != setval.EncodingFlatSet {
		t.Fatal("expected upgrade to FlatSet past the hard cap even though the requested limit was far higher")
	}
}

func Test_OpAddOnWrongTypeKey(t *testing.T) {
	d := dictionary.New()
	entry, _ := d.FindOrCreate("k")
	entry.Value = "a string, not a set"
	res := setops.OpAdd(d, "k", []string{"1"}, false, maxIntset)
	if res.Status != opresult.WrongType {
		t.Fatalf("expected WrongType, got %v", res.Status)
	}
}

func Test_OpAddDuplicatesCountZero(t *testing.T) {
	d := dictionary.New()
	setops.OpAdd(d, "s", []string{"1", "2"}, false, maxIntset)
	res := setops.OpAdd(d, "s", []string{"1", "2", "3"}, false, maxIntset)
	if res.Count != 1 {
		t.Fatalf("expected only 1 new member counted, got %d", res.Count)
	}
}

func Test_OpRemRemovesMatchingMembersOnly(t *testing.T) {
	d := dictionary.New()
	setops.OpAdd(d, "s", []string{"1", "2", "3"}, false, maxIntset)
	res := setops.OpRem(d, "s", []string{"2", "9", "x"})
	if res.Status != opresult.OK || res.Count != 1 {
		t.Fatalf("expected OK/1, got %+v", res)
	}
}

func Test_OpRemDeletesKeyWhenSetBecomesEmpty(t *testing.T) {
	d := dictionary.New()
	setops.OpAdd(d, "s", []string{"1"}, false, maxIntset)
	setops.OpRem(d, "s", []string{"1"})
	if d.Exists("s") {
		t.Fatal("expected key deleted once set became empty")
	}
}

func Test_OpRemOnMissingKey(t *testing.T) {
	d := dictionary.New()
	res := setops.OpRem(d, "missing", []string{"1"})
	if res.Status != opresult.KeyNotFound {
		t.Fatalf("expected KeyNotFound, got %v", res.Status)
	}
}

func Test_OpPopCountGreaterThanSizeDeletesKey(t *testing.T) {
	d := dictionary.New()
	setops.OpAdd(d, "s", []string{"1", "2", "3", "4", "5"}, false, maxIntset)
	res := setops.OpPop(d, "s", 100)
	if res.Status != opresult.OK || len(res.Members) != 5 {
		t.Fatalf("expected all 5 members popped, got %+v", res)
	}
	if d.Exists("s") {
		t.Fatal("expected key deleted after popping everything")
	}
}

func Test_OpPopPartialLeavesRemainder(t *testing.T) {
	d := dictionary.New()
	setops.OpAdd(d, "s", []string{"1", "2", "3", "4", "5"}, false, maxIntset)
	res := setops.OpPop(d, "s", 2)
	if res.Status != opresult.OK || len(res.Members) != 2 {
		t.Fatalf("expected 2 popped, got %+v", res)
	}
	entry, _ := d.Find("s")
	sv := entry.Value.(*setval.SetValue)
	if sv.Size() != 3 {
		t.Fatalf("expected 3 remaining, got %d", sv.Size())
	}
}

func Test_OpPopZeroCountReturnsEmpty(t *testing.T) {
	d := dictionary.New()
	setops.OpAdd(d, "s", []string{"1"}, false, maxIntset)
	res := setops.OpPop(d, "s", 0)
	if res.Status != opresult.OK || len(res.Members) != 0 {
		t.Fatalf("expected empty pop, got %+v", res)
	}
}

func Test_OpUnionDeduplicatesAcrossKeys(t *testing.T) {
	d := dictionary.New()
	setops.OpAdd(d, "a", []string{"1", "2", "3"}, false, maxIntset)
	setops.OpAdd(d, "b", []string{"2", "3", "4"}, false, maxIntset)
	res := setops.OpUnion(d, []string{"a", "b"})
	if res.Status != opresult.OK {
		t.Fatalf("expected OK, got %v", res.Status)
	}
	sort.Strings(res.Members)
	if got := res.Members; len(got) != 4 {
		t.Fatalf("expected 4 unique members, got %v", got)
	}
}

func Test_OpUnionAbortsOnWrongType(t *testing.T) {
	d := dictionary.New()
	setops.OpAdd(d, "a", []string{"1"}, false, maxIntset)
	entry, _ := d.FindOrCreate("b")
	entry.Value = "not a set"
	res := setops.OpUnion(d, []string{"a", "b"})
	if res.Status != opresult.WrongType {
		t.Fatalf("expected WrongType, got %v", res.Status)
	}
}

func Test_OpDiffSubtractsColocatedKeys(t *testing.T) {
	d := dictionary.New()
	setops.OpAdd(d, "a", []string{"1", "2", "3"}, false, maxIntset)
	setops.OpAdd(d, "b", []string{"2", "3", "4"}, false, maxIntset)
	res := setops.OpDiff(d, []string{"a", "b"})
	if res.Status != opresult.OK || len(res.Members) != 1 || res.Members[0] != "1" {
		t.Fatalf("expected [\"1\"], got %+v", res)
	}
}

func Test_OpDiffMissingSourceIsKeyNotFound(t *testing.T) {
	d := dictionary.New()
	res := setops.OpDiff(d, []string{"missing"})
	if res.Status != opresult.KeyNotFound {
		t.Fatalf("expected KeyNotFound, got %v", res.Status)
	}
}

func Test_OpInterSingleKeyReturnsItsMembers(t *testing.T) {
	d := dictionary.New()
	setops.OpAdd(d, "a", []string{"1", "2"}, false, maxIntset)
	res := setops.OpInter(d, []string{"a"}, false)
	if res.Status != opresult.OK || len(res.Members) != 2 {
		t.Fatalf("expected 2 members, got %+v", res)
	}
}

func Test_OpInterMultiKeyIntersectsAll(t *testing.T) {
	d := dictionary.New()
	setops.OpAdd(d, "a", []string{"1", "2", "3"}, false, maxIntset)
	setops.OpAdd(d, "b", []string{"2", "3", "4"}, false, maxIntset)
	setops.OpAdd(d, "c", []string{"2", "9"}, false, maxIntset)
	res := setops.OpInter(d, []string{"a", "b", "c"}, false)
	if res.Status != opresult.OK || len(res.Members) != 1 || res.Members[0] != "2" {
		t.Fatalf("expected [\"2\"], got %+v", res)
	}
}

func Test_OpInterRemoveFirstDropsDestinationKey(t *testing.T) {
	d := dictionary.New()
	setops.OpAdd(d, "dest", []string{"9"}, false, maxIntset)
	setops.OpAdd(d, "a", []string{"1", "2"}, false, maxIntset)
	res := setops.OpInter(d, []string{"dest", "a"}, true)
	if res.Status != opresult.OK || len(res.Members) != 2 {
		t.Fatalf("expected the dest key ignored, got %+v", res)
	}
}

func Test_OpInterMissingKeyIsKeyNotFound(t *testing.T) {
	d := dictionary.New()
	setops.OpAdd(d, "a", []string{"1"}, false, maxIntset)
	res := setops.OpInter(d, []string{"a", "missing"}, false)
	if res.Status != opresult.KeyNotFound {
		t.Fatalf("expected KeyNotFound, got %v", res.Status)
	}
}
