package naming

import "testing"

func testContext() Context {
	return Context{
		Name:         "cat",
		OriginalName: "cat.jpg",
		Index:        7,
		Width:        800,
		Height:       600,
	}
}

func TestResolveSizeTokens(t *testing.T) {
	got := Resolve("{name}_{width}x{height}", testContext())
	if got != "cat_800x600" {
		t.Errorf("expected cat_800x600, got %q", got)
	}
}

func TestResolveOriginalName(t *testing.T) {
	got := Resolve("{original_name}", testContext())
	if got != "cat.jpg" {
		t.Errorf("expected cat.jpg, got %q", got)
	}
}

func TestResolveIndex(t *testing.T) {
	if got := Resolve("img_{index}", testContext()); got != "img_7" {
		t.Errorf("expected img_7, got %q", got)
	}
}

func TestResolveIndexPadding(t *testing.T) {
	if got := Resolve("img_{index:03d}", testContext()); got != "img_007" {
		t.Errorf("expected img_007, got %q", got)
	}

	ctx := testContext()
	ctx.Index = 1234
	if got := Resolve("img_{index:03d}", ctx); got != "img_1234" {
		t.Errorf("padding must not truncate, got %q", got)
	}
}

func TestResolveUnknownTokenFallsBack(t *testing.T) {
	if got := Resolve("{color}", testContext()); got != "cat_resized" {
		t.Errorf("expected fallback cat_resized, got %q", got)
	}

	// one bad token poisons the whole pattern
	if got := Resolve("{name}_{color}", testContext()); got != "cat_resized" {
		t.Errorf("expected fallback cat_resized, got %q", got)
	}
}

func TestResolvePaddingOnStringTokenFallsBack(t *testing.T) {
	if got := Resolve("{name:03d}", testContext()); got != "cat_resized" {
		t.Errorf("expected fallback cat_resized, got %q", got)
	}
}

func TestResolveNoTokens(t *testing.T) {
	if got := Resolve("plain_name", testContext()); got != "plain_name" {
		t.Errorf("expected plain_name, got %q", got)
	}
}

func TestResolveDeterministic(t *testing.T) {
	ctx := testContext()
	first := Resolve("{name}_{index}_{width}x{height}", ctx)
	for i := 0; i < 10; i++ {
		if got := Resolve("{name}_{index}_{width}x{height}", ctx); got != first {
			t.Fatalf("resolution not deterministic: %q vs %q", first, got)
		}
	}
}
