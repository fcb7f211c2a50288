package collection

import (
	"encoding/json"
	"strconv"
	"testing"
)

func TestMap(t *testing.T) {
	got := Map([]int{1, 2, 3}, strconv.Itoa)
	if len(got) != 3 || got[0] != "1" || got[2] != "3" {
		t.Errorf("unexpected result: %v", got)
	}
}

func TestMapNilEncodesAsEmptyArray(t *testing.T) {
	b, _ := json.Marshal(Map[int, string](nil, strconv.Itoa))
	if string(b) != "[]" {
		t.Errorf("expected [], got %s", b)
	}
}
