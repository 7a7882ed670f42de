package check

import "testing"

func TestCompiledExcludesGlob(t *testing.T) {
	ce, err := compileExcludes([]string{"tests", ".*egg-info"}, false)
	if err != nil {
		t.Fatal(err)
	}
	if !ce.Matches("tests/") {
		t.Error("expected tests/ to match bare 'tests' pattern")
	}
	if !ce.Matches("tests/sub/file.py") {
		t.Error("expected nested path under tests/ to match")
	}
	if ce.Matches("src/a.py") {
		t.Error("did not expect src/a.py to match")
	}
}

func TestCompiledExcludesRegex(t *testing.T) {
	ce, err := compileExcludes([]string{`^build/`}, true)
	if err != nil {
		t.Fatal(err)
	}
	if !ce.Matches("build/out.py") {
		t.Error("expected build/out.py to match regex exclude")
	}
	if ce.Matches("src/build/out.py") {
		t.Error("did not expect nested build match for anchored regex")
	}
}
