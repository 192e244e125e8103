package jsonpatch_test

import (
	"encoding/json"
	"reflect"
	"testing"

	evanphx "github.com/evanphx/json-patch"
	"github.com/wI2L/jsondiff"

	jsonpatch "github.com/agentflare-ai/cowpatch"
)

// TestApplyMatchesEvanphx applies each patch with both engines and expects
// the same outcome.
func TestApplyMatchesEvanphx(t *testing.T) {
	testCases := []struct {
		name    string
		doc     string
		patch   string
		failure bool
	}{
		{"add member", `{"foo":"bar"}`, `[{"op":"add","path":"/baz","value":"qux"}]`, false},
		{"add element", `{"foo":["bar","baz"]}`, `[{"op":"add","path":"/foo/1","value":"qux"}]`, false},
		{"append", `{"foo":[1,2]}`, `[{"op":"add","path":"/foo/-","value":{"x":[3]}}]`, false},
		{"remove element", `{"foo":["bar","qux","baz"]}`, `[{"op":"remove","path":"/foo/1"}]`, false},
		{"replace nested", `{"a":{"b":{"c":1}},"d":[0]}`, `[{"op":"replace","path":"/a/b/c","value":[true,null]}]`, false},
		{"move", `{"foo":{"bar":"baz","waldo":"fred"},"qux":{"corge":"grault"}}`, `[{"op":"move","from":"/foo/waldo","path":"/qux/thud"}]`, false},
		{"move element", `{"foo":["all","grass","cows","eat"]}`, `[{"op":"move","from":"/foo/1","path":"/foo/3"}]`, false},
		{"copy", `{"a":{"b":[1,2]}}`, `[{"op":"copy","from":"/a/b","path":"/c"},{"op":"add","path":"/c/0","value":0}]`, false},
		{"escaped keys", `{"a/b":1,"m~n":2}`, `[{"op":"replace","path":"/a~1b","value":3},{"op":"remove","path":"/m~0n"}]`, false},
		{"sequence", `{"items":[{"n":1},{"n":2}]}`, `[
			{"op":"test","path":"/items/0/n","value":1},
			{"op":"add","path":"/items/1","value":{"n":1.5}},
			{"op":"copy","from":"/items/2","path":"/items/0/copy"},
			{"op":"move","from":"/items/0","path":"/items/1"},
			{"op":"remove","path":"/items/2"}
		]`, false},
		{"test failure", `{"foo":"bar"}`, `[{"op":"test","path":"/foo","value":"baz"}]`, true},
		{"remove missing", `{"foo":"bar"}`, `[{"op":"remove","path":"/baz"}]`, true},
		{"add past end", `{"foo":[1,2]}`, `[{"op":"add","path":"/foo/5","value":3}]`, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ref, err := evanphx.DecodePatch([]byte(tc.patch))
			if err != nil {
				t.Fatalf("evanphx decode: %v", err)
			}
			refOut, refErr := ref.Apply([]byte(tc.doc))

			got, err := jsonpatch.Apply(mustDoc(t, tc.doc), mustPatch(t, tc.patch))
			if tc.failure {
				if refErr == nil || err == nil {
					t.Fatalf("expected both engines to fail, got evanphx=%v cowpatch=%v", refErr, err)
				}
				return
			}
			if refErr != nil || err != nil {
				t.Fatalf("unexpected errors: evanphx=%v cowpatch=%v", refErr, err)
			}
			assertSameJSON(t, refOut, []byte(mustJSON(t, got)))
		})
	}
}

// TestApplyGeneratedPatches checks that patches produced by jsondiff take
// the source document to the target.
func TestApplyGeneratedPatches(t *testing.T) {
	testCases := []struct {
		source, target string
	}{
		{`{"a":1,"b":{"x":10,"y":20}}`, `{"a":2,"b":{"x":10,"y":21,"z":30}}`},
		{`{"arr":[1,2,3,4,5]}`, `{"arr":[3,4,5,1,2]}`},
		{`{"arr":[1,2,3]}`, `{"arr":[1]}`},
		{`{"arr":[]}`, `{"arr":[{"k":"v"},[1,[2]]]}`},
		{`{"keep":"x","drop":{"deep":[1]}}`, `{"keep":"x","add":"y"}`},
		{`{"type":"a","val":[1]}`, `{"type":{"nested":true},"val":"scalar"}`},
		{`[1,{"a":2}]`, `[{"a":2},1,3]`},
	}

	for _, tc := range testCases {
		diff, err := jsondiff.CompareJSON([]byte(tc.source), []byte(tc.target))
		if err != nil {
			t.Fatalf("jsondiff: %v", err)
		}
		raw, err := json.Marshal(diff)
		if err != nil {
			t.Fatalf("marshal diff: %v", err)
		}
		patch := mustPatch(t, string(raw))
		if err := patch.Validate(); err != nil {
			t.Fatalf("generated patch %s is invalid: %v", raw, err)
		}

		source := mustDoc(t, tc.source)
		got, err := jsonpatch.Apply(source, patch)
		if err != nil {
			t.Fatalf("apply %s: %v", raw, err)
		}
		assertEqualDoc(t, mustDoc(t, tc.target), got)
		assertEqualDoc(t, mustDoc(t, tc.source), source)
	}
}

func assertSameJSON(t *testing.T, want, got []byte) {
	t.Helper()
	var w, g any
	if err := json.Unmarshal(want, &w); err != nil {
		t.Fatalf("unmarshal %s: %v", want, err)
	}
	if err := json.Unmarshal(got, &g); err != nil {
		t.Fatalf("unmarshal %s: %v", got, err)
	}
	if !reflect.DeepEqual(w, g) {
		t.Errorf("documents differ:\nwant %s\ngot  %s", want, got)
	}
}
