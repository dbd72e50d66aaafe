package writer

import (
	"context"
	"strings"

	"github.com/FrankSLB/eneventextract/internal/lookup"
	"github.com/FrankSLB/eneventextract/internal/platform/logger"
)

// CountryCodeLookup resolves a country name to its alpha-2 code; "" means
// no match.
type CountryCodeLookup interface {
	CountryCode(ctx context.Context, countryName string) string
}

// RoleResolver decomposes a composite actor code into role fields.
type RoleResolver interface {
	ResolveRoleEncoding(actorCode string) lookup.RoleEncoding
}

// ActorResolver maps actor surface names to alpha-3 country codes and
// actor codes to group/religion/domestic-role fields. The lookup tables
// are shared read-only state; the resolver never mutates them.
type ActorResolver struct {
	log    *logger.Logger
	tables *lookup.Tables
	codes  CountryCodeLookup
	roles  RoleResolver
}

func NewActorResolver(baseLog *logger.Logger, tables *lookup.Tables, codes CountryCodeLookup, roles RoleResolver) *ActorResolver {
	return &ActorResolver{
		log:    baseLog.With("component", "ActorResolver"),
		tables: tables,
		codes:  codes,
		roles:  roles,
	}
}

// CountryCode resolves an actor surface name to a 3-letter country code.
// The alias table is checked before the person table; a name found in
// neither leaves the code unset.
func (r *ActorResolver) CountryCode(ctx context.Context, actorName string) string {
	country, ok := r.tables.CountryForActor(actorName)
	if !ok {
		return ""
	}
	alpha2 := r.codes.CountryCode(ctx, country)
	if alpha2 == "" {
		return ""
	}
	return lookup.Alpha2ToAlpha3(alpha2)
}

// Roles resolves the role encoding for an actor code. An empty code
// short-circuits without invoking the resolver.
func (r *ActorResolver) Roles(actorCode string) lookup.RoleEncoding {
	if strings.TrimSpace(actorCode) == "" {
		return lookup.RoleEncoding{}
	}
	return r.roles.ResolveRoleEncoding(actorCode)
}
