package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPredicate_Operators(t *testing.T) {
	conditions := Conditions{}.
		Add("name_contains", "mossack").
		Add("incorporation_date_from", "2000-01-01").
		Add("incorporation_date_to", "2010-12-31").
		Add("status", "Active")

	predicate, params := BuildPredicate("e", conditions)

	assert.Equal(t,
		"WHERE toLower(e.name) CONTAINS toLower($param_0)"+
			" AND e.incorporation_date >= date($param_1)"+
			" AND e.incorporation_date <= date($param_2)"+
			" AND e.status = $param_3",
		predicate)
	assert.Equal(t, map[string]any{
		"param_0": "mossack",
		"param_1": "2000-01-01",
		"param_2": "2010-12-31",
		"param_3": "Active",
	}, params)
}

func TestBuildPredicate_SkipsEmptyValues(t *testing.T) {
	conditions := Conditions{}.
		Add("name_contains", "").
		Add("jurisdiction_contains", nil).
		Add("status", "Active")

	predicate, params := BuildPredicate("e", conditions)

	// Empty and nil values are dropped; the surviving condition still gets
	// the first parameter slot.
	assert.Equal(t, "WHERE e.status = $param_0", predicate)
	assert.Equal(t, map[string]any{"param_0": "Active"}, params)
}

func TestBuildPredicate_Empty(t *testing.T) {
	predicate, params := BuildPredicate("e", Conditions{})

	assert.Empty(t, predicate)
	assert.Empty(t, params)
}

func TestBuildPredicate_Deterministic(t *testing.T) {
	conditions := Conditions{}.
		Add("name_contains", "smith").
		Add("countries_contains", "panama").
		Add("sourceID", "Panama Papers")

	first, firstParams := BuildPredicate("o", conditions)
	second, secondParams := BuildPredicate("o", conditions)

	assert.Equal(t, first, second)
	assert.Equal(t, firstParams, secondParams)
}

func TestSanitizeHelpers(t *testing.T) {
	assert.Equal(t, "Entity", sanitizeLabel("Entity"))
	assert.Equal(t, "Entity_DROP", sanitizeLabel("Entity;DROP"))
	assert.Equal(t, "OFFICER_OF", sanitizeRelType("officer_of"))
	assert.Equal(t, "OFFICER_OF_", sanitizeRelType("officer of]"))
	assert.Equal(t, "incorporation_date", sanitizeProperty("Incorporation_Date"))
	assert.Equal(t, "name__", sanitizeProperty("name;-"))
}

func TestRelTypePattern(t *testing.T) {
	assert.Empty(t, relTypePattern(nil))
	assert.Equal(t, ":OFFICER_OF", relTypePattern([]string{"officer_of"}))
	assert.Equal(t, ":OFFICER_OF|INTERMEDIARY_OF",
		relTypePattern([]string{"OFFICER_OF", "INTERMEDIARY_OF"}))
}

func TestSearchEntities_PlanAndCountCompanion(t *testing.T) {
	plan, count := SearchEntities(EntityFilters{
		Name:         "mossack",
		Jurisdiction: "panama",
	}, 20, 40)

	assert.Contains(t, plan.Text, "MATCH (e:Entity)")
	assert.Contains(t, plan.Text, "ORDER BY e.name")
	assert.Contains(t, plan.Text, "SKIP $offset")
	assert.Contains(t, plan.Text, "LIMIT $limit")
	assert.Equal(t, 20, plan.Params["limit"])
	assert.Equal(t, 40, plan.Params["offset"])

	assert.Contains(t, count.Text, "count(e) as total")
	assert.NotContains(t, count.Text, "LIMIT")
	assert.NotContains(t, count.Params, "limit")
	assert.NotContains(t, count.Params, "offset")

	// The count companion shares the search plan's filter parameters.
	for name, value := range count.Params {
		assert.Equal(t, plan.Params[name], value)
	}
	require.Len(t, count.Params, 2)
}

func TestSearchOfficers_FilterFields(t *testing.T) {
	plan, _ := SearchOfficers(OfficerFilters{
		Name:      "smith",
		Countries: "panama",
		Source:    "Panama Papers",
	}, 10, 0)

	assert.Contains(t, plan.Text, "MATCH (o:Officer)")
	assert.Contains(t, plan.Text, "toLower(o.name) CONTAINS toLower($param_0)")
	assert.Contains(t, plan.Text, "toLower(o.countries) CONTAINS toLower($param_1)")
	assert.Contains(t, plan.Text, "o.sourceID = $param_2")
}

func TestSearchIntermediaries_Label(t *testing.T) {
	plan, count := SearchIntermediaries(OfficerFilters{}, 10, 0)

	assert.Contains(t, plan.Text, "MATCH (i:Intermediary)")
	assert.NotContains(t, plan.Text, "WHERE")
	assert.Contains(t, count.Text, "count(i) as total")
}

func TestEntityDetails(t *testing.T) {
	withRels := EntityDetails("10000001", true)
	assert.Contains(t, withRels.Text, "OPTIONAL MATCH (e)-[r]-(related)")
	assert.Contains(t, withRels.Text, "collect(DISTINCT")
	assert.Equal(t, "10000001", withRels.Params["node_id"])

	withoutRels := EntityDetails("10000001", false)
	assert.NotContains(t, withoutRels.Text, "OPTIONAL MATCH")
	assert.Contains(t, withoutRels.Text, "[] as relationships")
}
