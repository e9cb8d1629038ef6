package domain

import (
	"testing"
)

func slugs(articles []Article) []string {
	out := make([]string, 0, len(articles))
	for _, a := range articles {
		out = append(out, a.Slug)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSelectRelated_Example(t *testing.T) {
	articles := []Article{
		{Slug: "a", Cluster: "x", Priority: PriorityP2},
		{Slug: "b", Cluster: "x", Priority: PriorityP1},
		{Slug: "c", Cluster: "y", Priority: PriorityP1},
	}

	got := slugs(SelectRelated(articles, "a", 5))
	if !equalStrings(got, []string{"b"}) {
		t.Errorf("SelectRelated(a, 5) = %v, expected [b]", got)
	}
}

func TestSelectRelated(t *testing.T) {
	articles := []Article{
		{Slug: "furnace-basics", Cluster: "furnaces", Priority: PriorityP3},
		{Slug: "furnace-sizing", Cluster: "furnaces", Priority: PriorityP1},
		{Slug: "furnace-filters", Cluster: "furnaces", Priority: PriorityUnknown},
		{Slug: "furnace-afue", Cluster: "furnaces", Priority: PriorityP2},
		{Slug: "furnace-noise", Cluster: "furnaces", Priority: PriorityP1},
		{Slug: "heat-pump-cold", Cluster: "heat-pumps", Priority: PriorityP1},
	}

	tests := []struct {
		name     string
		slug     string
		limit    int
		expected []string
	}{
		{"priority order, stable within tier", "furnace-basics", 10, []string{"furnace-sizing", "furnace-noise", "furnace-afue", "furnace-filters"}},
		{"truncated to limit", "furnace-basics", 2, []string{"furnace-sizing", "furnace-noise"}},
		{"excludes self", "furnace-sizing", 10, []string{"furnace-noise", "furnace-afue", "furnace-basics", "furnace-filters"}},
		{"single article cluster", "heat-pump-cold", 5, nil},
		{"unknown slug", "missing", 5, nil},
		{"zero limit", "furnace-basics", 0, nil},
		{"negative limit", "furnace-basics", -1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slugs(SelectRelated(articles, tt.slug, tt.limit))
			if !equalStrings(got, tt.expected) {
				t.Errorf("SelectRelated(%q, %d) = %v, expected %v", tt.slug, tt.limit, got, tt.expected)
			}
		})
	}
}

func TestSelectRelated_Properties(t *testing.T) {
	articles := []Article{
		{Slug: "a1", Cluster: "ac", Priority: PriorityP3},
		{Slug: "a2", Cluster: "ac", Priority: PriorityP1},
		{Slug: "a3", Cluster: "ac", Priority: PriorityP2},
		{Slug: "a4", Cluster: "ac", Priority: PriorityP2},
		{Slug: "a5", Cluster: "ac", Priority: PriorityP1},
		{Slug: "b1", Cluster: "AC", Priority: PriorityP1},
	}

	for _, a := range articles {
		for n := 0; n <= len(articles)+1; n++ {
			related := SelectRelated(articles, a.Slug, n)
			if len(related) > n {
				t.Errorf("SelectRelated(%q, %d) returned %d items", a.Slug, n, len(related))
			}
			for i, r := range related {
				if r.Slug == a.Slug {
					t.Errorf("SelectRelated(%q, %d) includes itself", a.Slug, n)
				}
				if r.Cluster != a.Cluster {
					t.Errorf("SelectRelated(%q, %d) includes %q from cluster %q", a.Slug, n, r.Slug, r.Cluster)
				}
				if i > 0 && related[i-1].Priority.Rank() > r.Priority.Rank() {
					t.Errorf("SelectRelated(%q, %d) not in priority order at %d", a.Slug, n, i)
				}
			}
		}
	}
}

func TestFilterByCluster(t *testing.T) {
	articles := []Article{
		{Slug: "a", Cluster: "Air Quality"},
		{Slug: "b", Cluster: "air quality"},
		{Slug: "c", Cluster: "Air Quality "},
		{Slug: "d", Cluster: "Air Quality"},
	}

	got := slugs(FilterByCluster(articles, "Air Quality"))
	if !equalStrings(got, []string{"a", "d"}) {
		t.Errorf("FilterByCluster = %v, expected [a d]", got)
	}
	for _, a := range FilterByCluster(articles, "Air Quality") {
		if a.Cluster != "Air Quality" {
			t.Errorf("FilterByCluster returned cluster %q", a.Cluster)
		}
	}
}

func TestSummarizeClusters(t *testing.T) {
	articles := []Article{
		{Slug: "hp-guide", Cluster: "Heat Pumps", Role: RolePillar},
		{Slug: "hp-cold", Cluster: "Heat Pumps", Role: RoleSpoke},
		{Slug: "ac-sizing", Cluster: "Air Conditioning", Role: RoleSpoke},
		{Slug: "orphan"},
	}

	got := SummarizeClusters(articles)
	if len(got) != 2 {
		t.Fatalf("expected 2 clusters, got %d", len(got))
	}
	if got[0].Name != "Air Conditioning" || got[0].Count != 1 || got[0].Pillar != nil {
		t.Errorf("unexpected first cluster: %+v", got[0])
	}
	if got[1].Name != "Heat Pumps" || got[1].Count != 2 {
		t.Errorf("unexpected second cluster: %+v", got[1])
	}
	if got[1].Pillar == nil || got[1].Pillar.Slug != "hp-guide" {
		t.Errorf("expected pillar hp-guide, got %+v", got[1].Pillar)
	}
	if got[1].Slug != "heat-pumps" {
		t.Errorf("expected cluster slug heat-pumps, got %q", got[1].Slug)
	}
	if got[1].Path() != "/topics/heat-pumps/" {
		t.Errorf("unexpected hub path %q", got[1].Path())
	}
	if got[1].Pillar.Permalink() != "/hp-guide/" {
		t.Errorf("unexpected permalink %q", got[1].Pillar.Permalink())
	}
}

func TestOrderForHub(t *testing.T) {
	articles := []Article{
		{Slug: "s2", Title: "Beta", Role: RoleSpoke, Priority: PriorityP2},
		{Slug: "s1", Title: "Alpha", Role: RoleSpoke, Priority: PriorityP2},
		{Slug: "p", Title: "Pillar", Role: RolePillar, Priority: PriorityP3},
		{Slug: "s0", Title: "Zeta", Role: RoleSpoke, Priority: PriorityP1},
		{Slug: "x", Title: "Loose", Role: RoleUnknown, Priority: PriorityP1},
		{Slug: "h", Title: "Hub", Role: RoleHub},
	}

	OrderForHub(articles)

	expected := []string{"p", "h", "s0", "s1", "s2", "x"}
	if got := slugs(articles); !equalStrings(got, expected) {
		t.Errorf("OrderForHub = %v, expected %v", got, expected)
	}
}
