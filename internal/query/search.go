package query

import (
	"fmt"
)

// EntityFilters are the filter conditions for entity search.
type EntityFilters struct {
	Name                  string
	Jurisdiction          string
	CountryCodes          string
	CompanyType           string
	Status                string
	IncorporationDateFrom string
	IncorporationDateTo   string
	Source                string
}

// OfficerFilters are the filter conditions for officer and intermediary search.
type OfficerFilters struct {
	Name         string
	Countries    string
	CountryCodes string
	Source       string
}

// searchPlans builds the paginated search plan and its count companion from
// one predicate, keeping the two mechanically in sync: same predicate, same
// parameters minus limit/offset.
func searchPlans(label, nodeVar string, conditions Conditions, limit, offset int) (Plan, Plan) {
	predicate, params := BuildPredicate(nodeVar, conditions)

	countParams := make(map[string]any, len(params))
	for k, v := range params {
		countParams[k] = v
	}

	params["limit"] = limit
	params["offset"] = offset

	clause := ""
	if predicate != "" {
		clause = "\n" + predicate
	}

	search := Plan{
		Text: fmt.Sprintf(
			"MATCH (%s:%s)%s\nRETURN %s\nORDER BY %s.name\nSKIP $offset\nLIMIT $limit",
			nodeVar, label, clause, nodeVar, nodeVar),
		Params: params,
	}
	count := Plan{
		Text: fmt.Sprintf(
			"MATCH (%s:%s)%s\nRETURN count(%s) as total",
			nodeVar, label, clause, nodeVar),
		Params: countParams,
	}
	return search, count
}

// SearchEntities builds the entity search plan and its count companion.
func SearchEntities(f EntityFilters, limit, offset int) (Plan, Plan) {
	conditions := Conditions{}.
		Add("name_contains", f.Name).
		Add("jurisdiction_contains", f.Jurisdiction).
		Add("country_codes_contains", f.CountryCodes).
		Add("company_type", f.CompanyType).
		Add("status", f.Status).
		Add("incorporation_date_from", f.IncorporationDateFrom).
		Add("incorporation_date_to", f.IncorporationDateTo).
		Add("sourceID", f.Source)

	return searchPlans("Entity", "e", conditions, limit, offset)
}

// SearchOfficers builds the officer search plan and its count companion.
func SearchOfficers(f OfficerFilters, limit, offset int) (Plan, Plan) {
	conditions := Conditions{}.
		Add("name_contains", f.Name).
		Add("countries_contains", f.Countries).
		Add("country_codes_contains", f.CountryCodes).
		Add("sourceID", f.Source)

	return searchPlans("Officer", "o", conditions, limit, offset)
}

// SearchIntermediaries builds the intermediary search plan and its count
// companion.
func SearchIntermediaries(f OfficerFilters, limit, offset int) (Plan, Plan) {
	conditions := Conditions{}.
		Add("name_contains", f.Name).
		Add("countries_contains", f.Countries).
		Add("country_codes_contains", f.CountryCodes).
		Add("sourceID", f.Source)

	return searchPlans("Intermediary", "i", conditions, limit, offset)
}

// EntityDetails builds the plan for one entity with, optionally, all of its
// relationships collected into descriptor maps.
func EntityDetails(nodeID string, includeRelationships bool) Plan {
	params := map[string]any{"node_id": nodeID}

	if !includeRelationships {
		return Plan{
			Text:   "MATCH (e:Entity {node_id: $node_id})\nRETURN e, [] as relationships",
			Params: params,
		}
	}

	return Plan{
		Text: `MATCH (e:Entity {node_id: $node_id})
OPTIONAL MATCH (e)-[r]-(related)
RETURN e,
       collect(DISTINCT {
           relationship: type(r),
           direction: CASE
               WHEN startNode(r) = e THEN 'outgoing'
               ELSE 'incoming'
           END,
           related_node: related,
           related_labels: labels(related)
       }) as relationships`,
		Params: params,
	}
}
