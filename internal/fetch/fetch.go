package fetch

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/kovnat/sapodataoperator/internal/common"
	"github.com/kovnat/sapodataoperator/internal/connection"
	"github.com/kovnat/sapodataoperator/internal/odata"
	"github.com/kovnat/sapodataoperator/pkg/resulttable"
)

// Task fetches data from an SAP OData service and materializes the response
// as a Result Table. One Task executes one request pipeline per invocation
// and holds no state across invocations.
type Task struct {
	spec     Spec
	registry *connection.Registry
}

// New validates the spec eagerly and returns a Task. The registry resolves
// Spec.ConnectionID when no pre-built hook is supplied; it may be nil when a
// hook is always provided.
func New(spec Spec, registry *connection.Registry) (*Task, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &Task{spec: spec, registry: registry}, nil
}

// Execute runs the fetch pipeline once: resolve transport, open a scoped
// session, construct the protocol client, issue the request and shape the
// rows. Any failure is wrapped into a single ExecutionError carrying the step
// in progress; on success the table is never nil.
func (t *Task) Execute(ctx context.Context) (*resulttable.Table, error) {
	logger := common.GetLogger().WithComponent("fetch").WithService(t.spec.ServiceURL)

	hook, err := t.resolveHook(logger)
	if err != nil {
		return nil, err
	}

	// Redirect the generically configured transport to the target service:
	// scheme://host[:port] only, path and query stripped.
	base, err := serviceBase(t.spec.ServiceURL)
	if err != nil {
		return nil, execErr(StepCreateSession, err)
	}
	hook.BaseURL = base

	sess, err := hook.GetConn(ctx)
	if err != nil {
		return nil, execErr(StepCreateSession, err)
	}
	defer sess.Close()

	client, err := odata.New(ctx, t.spec.ServiceURL, sess.Client())
	if err != nil {
		return nil, execErr(StepBuildClient, err)
	}

	if strings.TrimSpace(t.spec.Function) != "" {
		if strings.TrimSpace(t.spec.Entity) != "" {
			logger.Info("entity is ignored when function is provided", "function", t.spec.Function, "entity", t.spec.Entity)
		}
		return t.fetchFunction(ctx, client)
	}
	return t.fetchEntity(ctx, client, logger)
}

// resolveHook applies the transport precedence rule: a pre-built hook wins; a
// connection id is consulted only when no hook is usable; neither usable is a
// transport-unavailable failure at the session step.
func (t *Task) resolveHook(logger *common.Logger) (*connection.Hook, error) {
	hook := t.spec.Hook
	if id := strings.TrimSpace(t.spec.ConnectionID); id != "" {
		if hook != nil {
			logger.Info("connection id is ignored when a transport hook is provided", "connection", id)
		} else {
			logger.Info("transport hook not provided, building one from connection id", "connection", id)
			if t.registry != nil {
				h, err := t.registry.Hook(id)
				if err != nil {
					return nil, execErr(StepCreateSession, err)
				}
				hook = h
			}
		}
	}
	if hook == nil {
		return nil, execErr(StepCreateSession, ErrTransportUnavailable)
	}
	return hook, nil
}

func (t *Task) fetchFunction(ctx context.Context, client *odata.Client) (*resulttable.Table, error) {
	fr, err := client.Function(t.spec.Function)
	if err != nil {
		return nil, execErr(StepPrepareFunction, err)
	}
	for _, name := range sortedKeys(t.spec.Parameters) {
		fr = fr.Parameter(name, t.spec.Parameters[name])
	}

	recs, err := fr.Execute(ctx)
	if err != nil {
		return nil, execErr(StepSendRequest, err)
	}

	tbl := resulttable.New(recs.Columns)
	for _, r := range recs.Rows {
		tbl.Append(resulttable.Row(r))
	}
	return tbl, nil
}

func (t *Task) fetchEntity(ctx context.Context, client *odata.Client, logger *common.Logger) (*resulttable.Table, error) {
	property := t.spec.property()
	if property != t.spec.Property {
		logger.Info("property is not provided, filling with entity value", "entity", t.spec.Entity)
	}

	esr, err := client.EntitySet(t.spec.Entity)
	if err != nil {
		return nil, execErr(StepPrepareEntity, err)
	}
	nav, err := esr.GetEntity(t.spec.Parameters).Nav(property)
	if err != nil {
		return nil, execErr(StepPrepareEntity, err)
	}

	recs, err := nav.GetEntities().Execute(ctx)
	if err != nil {
		return nil, execErr(StepSendRequest, err)
	}

	// The declared schema of the entity set named like the property is the
	// authoritative column list; raw entities may carry extra protocol
	// attributes that must not be surfaced.
	set, ok := client.Schema().EntitySet(property)
	if !ok {
		return nil, execErr(StepReadSchema, fmt.Errorf("odata: schema has no entity set %q", property))
	}
	props := set.EntityType().Properties()

	columns := make([]string, 0, len(props))
	for _, p := range props {
		columns = append(columns, p.Name)
	}
	tbl := resulttable.New(columns)
	for _, raw := range recs.Rows {
		row := make(resulttable.Row, len(columns))
		for _, c := range columns {
			row[c] = raw[c]
		}
		tbl.Append(row)
	}
	return tbl, nil
}

// serviceBase reduces a service URL to scheme://host[:port].
func serviceBase(serviceURL string) (string, error) {
	u, err := url.Parse(serviceURL)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("fetch: service url %q has no scheme or host", serviceURL)
	}
	return u.Scheme + "://" + u.Host, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
