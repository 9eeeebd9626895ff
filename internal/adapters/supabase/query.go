package supabase

import (
	"net/url"
	"strings"
)

// query es un builder mínimo de filtros PostgREST.
type query struct {
	table  string
	params url.Values
	orders []string
}

func from(table string) *query {
	return &query{table: table, params: url.Values{}}
}

func (q *query) sel(cols string) *query {
	q.params.Set("select", cols)
	return q
}

func (q *query) eq(col, v string) *query {
	q.params.Add(col, "eq."+v)
	return q
}

// in filtra por una lista de valores: col=in.(a,b). Los valores con coma o
// paréntesis van entre comillas.
func (q *query) in(col string, vs []string) *query {
	quoted := make([]string, 0, len(vs))
	for _, v := range vs {
		if strings.ContainsAny(v, `,()"`) {
			v = `"` + strings.ReplaceAll(v, `"`, `\"`) + `"`
		}
		quoted = append(quoted, v)
	}
	q.params.Add(col, "in.("+strings.Join(quoted, ",")+")")
	return q
}

func (q *query) order(col string, desc bool) *query {
	dir := "asc"
	if desc {
		dir = "desc"
	}
	q.orders = append(q.orders, col+"."+dir)
	return q
}

func (q *query) limit(n string) *query {
	q.params.Set("limit", n)
	return q
}

func (q *query) values() url.Values {
	out := url.Values{}
	for k, v := range q.params {
		out[k] = append([]string(nil), v...)
	}
	if len(q.orders) > 0 {
		out.Set("order", strings.Join(q.orders, ","))
	}
	return out
}
