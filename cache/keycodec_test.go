package cache

import (
	"errors"
	"testing"
)

func TestBuildKey_Deterministic(t *testing.T) {
	a, err := BuildKey("inventory", "list_products", map[string]any{
		"page":     2,
		"category": "tools",
		"active":   true,
	})
	if err != nil {
		t.Fatalf("BuildKey() error = %v", err)
	}

	// Same params, different insertion order.
	b, err := BuildKey("inventory", "list_products", map[string]any{
		"active":   true,
		"category": "tools",
		"page":     2,
	})
	if err != nil {
		t.Fatalf("BuildKey() error = %v", err)
	}

	if a != b {
		t.Errorf("keys differ for identical params: %q vs %q", a, b)
	}

	want := `inventory:list_products?active=true&category="tools"&page=2`
	if a != want {
		t.Errorf("BuildKey() = %q, want %q", a, want)
	}
}

func TestBuildKey_ValuesChangeKey(t *testing.T) {
	a, _ := BuildKey("inventory", "get_product", map[string]any{"id": 1})
	b, _ := BuildKey("inventory", "get_product", map[string]any{"id": 2})
	if a == b {
		t.Errorf("different param values produced the same key: %q", a)
	}

	// int 1 and string "1" must not collide.
	c, _ := BuildKey("inventory", "get_product", map[string]any{"id": "1"})
	if a == c {
		t.Errorf("int and string params produced the same key: %q", a)
	}
}

func TestBuildKey_NamespaceAndOperation(t *testing.T) {
	a, _ := BuildKey("inventory", "list", nil)
	b, _ := BuildKey("reports", "list", nil)
	c, _ := BuildKey("inventory", "count", nil)

	if a == b || a == c {
		t.Errorf("namespace/operation not part of the key: %q %q %q", a, b, c)
	}

	if _, err := BuildKey("", "list", nil); !errors.Is(err, ErrInvalidKeyInput) {
		t.Errorf("empty namespace: error = %v, want ErrInvalidKeyInput", err)
	}
	if _, err := BuildKey("inventory", "", nil); !errors.Is(err, ErrInvalidKeyInput) {
		t.Errorf("empty operation: error = %v, want ErrInvalidKeyInput", err)
	}
}

func TestBuildKey_ScalarSlices(t *testing.T) {
	key, err := BuildKey("inventory", "by_ids", map[string]any{"ids": []int{3, 1, 2}})
	if err != nil {
		t.Fatalf("BuildKey() error = %v", err)
	}
	want := "inventory:by_ids?ids=[3,1,2]"
	if key != want {
		t.Errorf("BuildKey() = %q, want %q", key, want)
	}

	if _, err := BuildKey("inventory", "by_tags", map[string]any{"tags": []string{"a", "b"}}); err != nil {
		t.Errorf("string slice rejected: %v", err)
	}
}

func TestBuildKey_RejectsNonScalars(t *testing.T) {
	cases := map[string]any{
		"map":          map[string]int{"a": 1},
		"struct":       struct{ A int }{A: 1},
		"func":         func() {},
		"chan":         make(chan int),
		"pointer":      new(int),
		"nested slice": [][]int{{1}},
	}

	for name, value := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := BuildKey("inventory", "op", map[string]any{"v": value})
			if !errors.Is(err, ErrInvalidKeyInput) {
				t.Errorf("error = %v, want ErrInvalidKeyInput", err)
			}
		})
	}
}

func TestBuildKey_NilParam(t *testing.T) {
	key, err := BuildKey("inventory", "op", map[string]any{"filter": nil})
	if err != nil {
		t.Fatalf("BuildKey() error = %v", err)
	}
	if key != "inventory:op?filter=null" {
		t.Errorf("BuildKey() = %q", key)
	}
}
