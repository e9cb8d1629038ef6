package domain

import (
	"slices"
	"strings"
)

// FilterByCluster returns the articles whose cluster equals cluster exactly
func FilterByCluster(articles []Article, cluster string) []Article {
	var out []Article
	for _, a := range articles {
		if a.Cluster == cluster {
			out = append(out, a)
		}
	}
	return out
}

// SelectRelated picks up to limit articles from the same cluster as the
// article identified by slug, excluding it, P1 before P2 before P3.
// Input order is kept between articles of equal priority.
// Returns nil when slug is unknown or limit is not positive.
func SelectRelated(articles []Article, slug string, limit int) []Article {
	if limit <= 0 {
		return nil
	}

	idx := slices.IndexFunc(articles, func(a Article) bool { return a.Slug == slug })
	if idx < 0 {
		return nil
	}
	cluster := articles[idx].Cluster

	var candidates []Article
	for _, a := range articles {
		if a.Slug == slug || a.Cluster != cluster {
			continue
		}
		candidates = append(candidates, a)
	}

	SortByPriority(candidates)

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

// SummarizeClusters groups articles into cluster summaries sorted by name.
// Articles without a cluster are skipped.
func SummarizeClusters(articles []Article) []ClusterSummary {
	byName := make(map[string]*ClusterSummary)
	var names []string

	for i := range articles {
		a := &articles[i]
		if a.Cluster == "" {
			continue
		}
		s, ok := byName[a.Cluster]
		if !ok {
			s = &ClusterSummary{Name: a.Cluster, Slug: Slugify(a.Cluster)}
			byName[a.Cluster] = s
			names = append(names, a.Cluster)
		}
		s.Count++
		if s.Pillar == nil && a.Role == RolePillar {
			s.Pillar = a
		}
	}

	slices.Sort(names)
	out := make([]ClusterSummary, 0, len(names))
	for _, n := range names {
		out = append(out, *byName[n])
	}
	return out
}

// OrderForHub sorts cluster articles for a hub page: pillars, then hubs, then
// spokes, each tier by priority then title
func OrderForHub(articles []Article) {
	slices.SortStableFunc(articles, func(a, b Article) int {
		if ra, rb := roleRank(a.Role), roleRank(b.Role); ra != rb {
			return ra - rb
		}
		if pa, pb := a.Priority.Rank(), b.Priority.Rank(); pa != pb {
			return pa - pb
		}
		return strings.Compare(a.Title, b.Title)
	})
}

func roleRank(r Role) int {
	if r == RoleUnknown {
		return 4
	}
	return int(r)
}
