package cli

import (
	"strings"
	"testing"

	"github.com/stangrad/wayfind/pkg/cache"
)

func TestBuildKeyer(t *testing.T) {
	if k := buildKeyer(CacheConfig{}); k != nil {
		t.Error("empty prefix should fall back to the runner's default keyer")
	}

	k := buildKeyer(CacheConfig{KeyPrefix: "bldg:main:"})
	if k == nil {
		t.Fatal("configured prefix should build a keyer")
	}
	key := k.LayoutKey("deadbeef", cache.LayoutKeyOpts{Seed: 1})
	if !strings.HasPrefix(key, "bldg:main:") {
		t.Errorf("layout key = %q, want bldg:main: prefix", key)
	}
	if doc := k.DocumentKey("deadbeef"); !strings.HasPrefix(doc, "bldg:main:") {
		t.Errorf("document key = %q, want bldg:main: prefix", doc)
	}
}
