// Package permcache holds the role grant matrix in a casbin in-memory
// enforcer. The matrix is static configuration loaded at startup, so there is
// no database store behind it.
package permcache

import (
	"context"
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/workforcehq/jobboard/business/domain/permbus"
	"github.com/workforcehq/jobboard/business/types/actions"
	"github.com/workforcehq/jobboard/business/types/resource"
	"github.com/workforcehq/jobboard/business/types/role"
	"github.com/workforcehq/jobboard/foundation/logger"
)

const casbinModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == "ROLE:SUPER_ADMIN" || (r.sub == p.sub && r.obj == p.obj && r.act == p.act)
`

type grant struct {
	role     role.Role
	resource resource.Resource
	actions  []actions.Action
}

var grantMatrix = []grant{
	{role.Admin, resource.User, []actions.Action{actions.Create, actions.Get, actions.List, actions.Update, actions.Delete, actions.ForceDelete, actions.Restore, actions.ChangeType, actions.ChangeStatus}},
	{role.Admin, resource.Job, []actions.Action{actions.Create, actions.Get, actions.List, actions.Update, actions.Delete, actions.ChangeStatus}},
	{role.Admin, resource.Category, []actions.Action{actions.Create, actions.Get, actions.List, actions.Update, actions.Delete}},
	{role.Admin, resource.Application, []actions.Action{actions.Get, actions.List, actions.ChangeStatus}},
	{role.Admin, resource.Tenant, []actions.Action{actions.Get}},

	{role.Employer, resource.User, []actions.Action{actions.Get, actions.Update}},
	{role.Employer, resource.Job, []actions.Action{actions.Create, actions.Get, actions.List, actions.Update, actions.Delete, actions.ChangeStatus}},
	{role.Employer, resource.Category, []actions.Action{actions.Get, actions.List}},
	{role.Employer, resource.Application, []actions.Action{actions.Get, actions.List, actions.ChangeStatus}},

	{role.Candidate, resource.User, []actions.Action{actions.Get, actions.Update}},
	{role.Candidate, resource.Job, []actions.Action{actions.Get, actions.List}},
	{role.Candidate, resource.Application, []actions.Action{actions.Get, actions.List}},
}

// Store implements permbus.Grants with a casbin enforcer populated from the
// static grant matrix.
type Store struct {
	log      *logger.Logger
	enforcer *casbin.Enforcer
}

// NewStore constructs the grant store and loads the matrix.
func NewStore(log *logger.Logger) (*Store, error) {
	m, err := model.NewModelFromString(casbinModel)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("create enforcer: %w", err)
	}

	s := Store{
		log:      log,
		enforcer: e,
	}

	for _, g := range grantMatrix {
		sub := subject(g.role)
		for _, act := range g.actions {
			if _, err := e.AddPolicy(sub, g.resource.String(), act.String()); err != nil {
				return nil, fmt.Errorf("add policy %s %s %s: %w", sub, g.resource, act, err)
			}
		}
	}

	return &s, nil
}

// Allowed reports whether the role is granted the resource/action pair.
func (s *Store) Allowed(ctx context.Context, r role.Role, res resource.Resource, act actions.Action) error {
	ok, err := s.enforcer.Enforce(subject(r), res.String(), act.String())
	if err != nil {
		return fmt.Errorf("enforce: %w", err)
	}

	if !ok {
		return fmt.Errorf("role %s on %s/%s: %w", r, res, act, permbus.ErrForbidden)
	}

	return nil
}

func subject(r role.Role) string {
	return "ROLE:" + r.String()
}
