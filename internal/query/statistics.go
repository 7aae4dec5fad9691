package query

// StatType selects a statistics aggregate.
type StatType string

const (
	StatOverview           StatType = "overview"
	StatBySource           StatType = "by_source"
	StatByJurisdiction     StatType = "by_jurisdiction"
	StatRelationshipCounts StatType = "relationship_counts"
)

// Statistics builds a fixed aggregate plan for the given stat type. An
// unknown stat type falls back to a generic label-count breakdown.
func Statistics(statType StatType) Plan {
	var text string

	switch statType {
	case StatOverview:
		text = `CALL {
    MATCH (e:Entity) RETURN count(e) as entity_count
}
CALL {
    MATCH (o:Officer) RETURN count(o) as officer_count
}
CALL {
    MATCH (i:Intermediary) RETURN count(i) as intermediary_count
}
CALL {
    MATCH (a:Address) RETURN count(a) as address_count
}
CALL {
    MATCH ()-[r]->() RETURN count(r) as relationship_count
}
RETURN entity_count, officer_count, intermediary_count, address_count, relationship_count`

	case StatBySource:
		text = `MATCH (n)
WHERE n.sourceID IS NOT NULL
RETURN n.sourceID as source, labels(n)[0] as node_type, count(*) as count
ORDER BY source, node_type`

	case StatByJurisdiction:
		text = `MATCH (e:Entity)
WHERE e.jurisdiction IS NOT NULL
RETURN e.jurisdiction as jurisdiction,
       e.jurisdiction_description as description,
       count(*) as entity_count
ORDER BY entity_count DESC
LIMIT 50`

	case StatRelationshipCounts:
		text = `MATCH ()-[r]->()
RETURN type(r) as relationship_type, count(*) as count
ORDER BY count DESC`

	default:
		text = `MATCH (n)
RETURN labels(n)[0] as node_type, count(*) as count
ORDER BY count DESC`
	}

	return Plan{Text: text, Params: map[string]any{}}
}
