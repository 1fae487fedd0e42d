package validator

import (
	"github.com/scimcore/scim/filter"
	"github.com/scimcore/scim/issues"
	"github.com/scimcore/scim/schema"
	"github.com/scimcore/scim/scimdata"
	"github.com/scimcore/scim/scimsort"
)

// ListResponse is the decoded shape of a query/search response body
// (spec §4.J): schemas/totalResults/itemsPerPage/startIndex plus the
// resources themselves, already deserialized into ScimData for
// filter/sort re-checking.
type ListResponse struct {
	Schemas      []string
	TotalResults int
	ItemsPerPage int
	StartIndex   int
	Resources    []*scimdata.ScimData
}

// queryParams is shared by ResourcesQuery (query string) and
// SearchRequestPost (request body): the filter/sort/pagination the
// caller asked for, which the response is checked against.
type queryParams struct {
	Filter   filter.Expression
	SortBy   schema.BoundedAttrRep
	SortSet  bool
	SortDesc bool
}

func checkListResponse(resp ListResponse, p queryParams, attrs *schema.BoundedAttrs) *issues.Issues {
	out := issues.New()

	found := false
	for _, s := range resp.Schemas {
		if s == ListResponseSchema {
			found = true
		}
	}
	if !found {
		out.AddError(issues.SchemasMissingBase, issues.Location{"body", "schemas"})
	}

	if resp.TotalResults < len(resp.Resources) {
		out.AddError(issues.BadResourceCount, issues.Location{"body", "totalResults"})
	}
	if resp.ItemsPerPage < len(resp.Resources) {
		out.AddError(issues.BadResourceCount, issues.Location{"body", "itemsPerPage"})
	}

	if p.Filter != nil {
		for i, res := range resp.Resources {
			if !filter.Evaluate(p.Filter, res, attrs) {
				out.AddError(issues.ResourceNotMatchFilter, issues.Location{"body", "Resources", i})
			}
		}
	}

	if p.SortSet {
		order := scimsort.Ascending
		if p.SortDesc {
			order = scimsort.Descending
		}
		sorter := scimsort.Sorter{Rep: p.SortBy, Order: order, Attrs: attrs}
		sorted := append([]*scimdata.ScimData(nil), resp.Resources...)
		sorter.Sort(sorted)
		for i := range sorted {
			if sorted[i] != resp.Resources[i] {
				out.AddError(issues.ResourcesNotSorted, issues.Location{"body", "Resources"})
				break
			}
		}
	}

	return out
}

// ResourcesQuery validates GET /Resources (query-string driven search).
type ResourcesQuery struct{ Resource }

func (v ResourcesQuery) ValidateResponse(statusCode int, resp ListResponse, filterExpr filter.Expression, sortBy schema.BoundedAttrRep, sortSet, sortDesc bool) *issues.Issues {
	out := issues.New()
	checkStatus(statusCode, out, 200)
	out.Merge(checkListResponse(resp, queryParams{Filter: filterExpr, SortBy: sortBy, SortSet: sortSet, SortDesc: sortDesc}, v.Schema.BoundedAttrs()), nil)
	return out
}

// SearchRequestPost validates POST /Resources/.search: same response
// contract as ResourcesQuery, plus the request body's own schema check.
type SearchRequestPost struct{ Resource }

func (v SearchRequestPost) ValidateRequest(schemas []string) *issues.Issues {
	out := issues.New()
	const searchSchema = "urn:ietf:params:scim:api:messages:2.0:SearchRequest"
	for _, s := range schemas {
		if s == searchSchema {
			return out
		}
	}
	out.AddError(issues.SchemasMissingBase, issues.Location{"body", "schemas"})
	return out
}

func (v SearchRequestPost) ValidateResponse(statusCode int, resp ListResponse, filterExpr filter.Expression, sortBy schema.BoundedAttrRep, sortSet, sortDesc bool) *issues.Issues {
	out := issues.New()
	checkStatus(statusCode, out, 200)
	out.Merge(checkListResponse(resp, queryParams{Filter: filterExpr, SortBy: sortBy, SortSet: sortSet, SortDesc: sortDesc}, v.Schema.BoundedAttrs()), nil)
	return out
}
