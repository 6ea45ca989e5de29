package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/five82/concierge/internal/building"
	"github.com/five82/concierge/internal/listing"
	"github.com/five82/concierge/internal/logging"
)

// Output formats of RunList.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// ErrConflictingQuery is returned when a keyword and a filter are both given.
var ErrConflictingQuery = errors.New("use either --keyword or --filter/--where, not both")

// ListOptions configure a one-shot list.
type ListOptions struct {
	Options
	Resource string
	Keyword  string
	Where    []string // field=value pairs built through the resource's filter schema
	Filter   string   // raw filter expression
	Page     int
	Size     int
	Output   string
	Width    int // table width; zero means unlimited
}

// listOutput is what a list run prints.
type listOutput struct {
	Resource string
	Filter   string
	Page     listing.Page
	Columns  []building.Column
	Rows     [][]string
	Items    any
}

// RunList fetches one page of a resource and writes it to out.
func RunList(ctx context.Context, opts ListOptions, out io.Writer) error {
	info, err := building.ParseResource(opts.Resource)
	if err != nil {
		return err
	}
	format := strings.ToLower(strings.TrimSpace(opts.Output))
	if format == "" {
		format = OutputTable
	}
	if format != OutputTable && format != OutputJSON && format != OutputYAML {
		return fmt.Errorf("unknown output format %q (want table, json or yaml)", opts.Output)
	}

	e, err := setup(opts.Options)
	if err != nil {
		return err
	}
	defer func() { _ = e.log.Close() }()
	ctx = logging.WithLogger(ctx, e.log.Logger)

	if opts.Size <= 0 {
		opts.Size = e.cfg.PageSize
	}

	var result listOutput
	switch info.Name {
	case building.Apartments.Name:
		result, err = listResource(ctx, e.client, building.Apartments, opts)
	case building.Residents.Name:
		result, err = listResource(ctx, e.client, building.Residents, opts)
	case building.Vehicles.Name:
		result, err = listResource(ctx, e.client, building.Vehicles, opts)
	case building.Fees.Name:
		result, err = listResource(ctx, e.client, building.Fees, opts)
	case building.Invoices.Name:
		result, err = listResource(ctx, e.client, building.Invoices, opts)
	default:
		err = fmt.Errorf("%w %q", building.ErrUnknownResource, info.Name)
	}
	if err != nil {
		return err
	}
	return writeList(out, format, result, opts.Width)
}

func listResource[T any](ctx context.Context, client *building.Client, res building.Resource[T], opts ListOptions) (listOutput, error) {
	log := logging.FromContext(ctx)
	var failure error
	ctrl := listing.NewController[T](
		listing.Config{Resource: res.Name, DefaultField: res.DefaultField, PageSize: opts.Size},
		building.NewLister[T](client, res.Name),
		listing.NotifierFunc(func(err error) { failure = err }),
		log,
	)

	if err := applyQuery(ctrl, res.Info, opts); err != nil {
		return listOutput{}, err
	}
	if opts.Page > 1 {
		ctrl.ReadLocation(&url.URL{RawQuery: listing.PageParam + "=" + strconv.Itoa(opts.Page)})
	}

	if err := fetchAll(ctx, ctrl, ctrl.Load()); err != nil {
		return listOutput{}, err
	}
	if failure != nil {
		return listOutput{}, failure
	}

	st := ctrl.State()
	rows := make([][]string, len(st.Items))
	for i, item := range st.Items {
		rows[i] = append([]string{strconv.Itoa(st.Page.Offset() + i + 1)}, res.Row(item)...)
	}
	return listOutput{
		Resource: res.Name,
		Filter:   st.Query.Expression(res.DefaultField),
		Page:     st.Page,
		Columns:  append([]building.Column{{Title: "#", Width: 3}}, res.Columns...),
		Rows:     rows,
		Items:    st.Items,
	}, nil
}

// applyQuery routes the command line search into the controller.
func applyQuery[T any](ctrl *listing.Controller[T], info building.Info, opts ListOptions) error {
	keyword := strings.TrimSpace(opts.Keyword)
	expr := strings.TrimSpace(opts.Filter)
	if len(opts.Where) > 0 {
		values, err := parseWhere(info, opts.Where)
		if err != nil {
			return err
		}
		built := info.Schema.Build(values)
		if expr != "" && built != "" {
			expr = expr + " and " + built
		} else if built != "" {
			expr = built
		}
	}
	if keyword != "" && expr != "" {
		return ErrConflictingQuery
	}
	if keyword != "" {
		ctrl.SubmitKeyword(keyword)
	}
	if expr != "" {
		ctrl.SubmitFilter(expr)
	}
	return nil
}

func parseWhere(info building.Info, pairs []string) (map[string]string, error) {
	values := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		field, value, ok := strings.Cut(pair, "=")
		field = strings.TrimSpace(field)
		if !ok || field == "" {
			return nil, fmt.Errorf("--where %q: want field=value", pair)
		}
		if _, known := info.Schema.Lookup(field); !known {
			return nil, fmt.Errorf("--where %q: %s has no filter field %q (fields: %s)",
				pair, info.Name, field, strings.Join(info.Schema.Names(), ", "))
		}
		values[field] = value
	}
	return values, nil
}

// fetchAll runs req and any follow-up the controller asks for.
func fetchAll[T any](ctx context.Context, ctrl *listing.Controller[T], req listing.Request) error {
	for {
		res, err := ctrl.Fetch(ctx, req)
		outcome, follow := ctrl.Resolve(req, res, err)
		if outcome == listing.OutcomeFailed {
			return err
		}
		if follow == nil {
			return nil
		}
		req = *follow
	}
}

func writeList(out io.Writer, format string, result listOutput, width int) error {
	switch format {
	case OutputJSON, OutputYAML:
		doc, err := listDocument(result)
		if err != nil {
			return err
		}
		if format == OutputJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		}
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		if _, err := io.WriteString(out, renderTable(result.Columns, result.Rows, width)); err != nil {
			return err
		}
		_, err := fmt.Fprintf(out, "\n%s\n", pageSummary(result))
		return err
	}
}

// listDocument converts the result into generic JSON values so both encoders
// emit the backend's field names.
func listDocument(result listOutput) (map[string]any, error) {
	data, err := json.Marshal(result.Items)
	if err != nil {
		return nil, fmt.Errorf("encode items: %w", err)
	}
	var items []any
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	if items == nil {
		items = []any{}
	}
	return map[string]any{
		"resource":      result.Resource,
		"filter":        result.Filter,
		"page":          result.Page.Number,
		"size":          result.Page.Size,
		"totalPages":    result.Page.TotalPages,
		"totalElements": result.Page.TotalElements,
		"items":         items,
	}, nil
}

func pageSummary(result listOutput) string {
	if result.Page.TotalElements == 0 {
		return "No " + result.Resource + " found."
	}
	first := result.Page.Offset() + 1
	last := result.Page.Offset() + len(result.Rows)
	summary := fmt.Sprintf("%d-%d of %d %s, page %d/%d", first, last, result.Page.TotalElements,
		result.Resource, result.Page.Number, max(result.Page.TotalPages, 1))
	if result.Filter != "" {
		summary += "  filter: " + result.Filter
	}
	return summary
}
