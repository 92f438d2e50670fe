// Package discord adapts the Discord gateway to the roster: it reduces a
// member's role set to the single highest-priority qualifying label and
// forwards wallet submissions. Everything here is thin glue; the roster
// package owns the actual record logic.
package discord

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/Karatekid05/monadians-wallet-collector/pkg/types"
)

// RoleDirectory reduces a member's Discord role IDs to the highest-priority
// qualifying role label, per the configured priority list. Role names are
// resolved against the guild's role table, which is fetched once and
// refreshed on demand.
type RoleDirectory struct {
	session  *discordgo.Session
	guildID  string
	priority []string // qualifying labels, highest first

	mu       sync.Mutex
	nameByID map[string]string
}

// NewRoleDirectory builds a directory for the given guild. mappings supply
// the qualifying labels in priority order.
func NewRoleDirectory(session *discordgo.Session, guildID string, mappings []types.RoleMapping) *RoleDirectory {
	labels := make([]string, 0, len(mappings))
	for _, m := range mappings {
		labels = append(labels, m.Role)
	}
	return &RoleDirectory{
		session:  session,
		guildID:  guildID,
		priority: labels,
	}
}

// HighestLabel returns the highest-priority qualifying label among the given
// role IDs, or the empty string when none qualifies.
func (d *RoleDirectory) HighestLabel(roleIDs []string) (string, error) {
	names, err := d.roleNames()
	if err != nil {
		return "", err
	}
	held := make(map[string]bool, len(roleIDs))
	for _, id := range roleIDs {
		if name, ok := names[id]; ok {
			held[name] = true
		}
	}
	for _, label := range d.priority {
		if held[label] {
			return label, nil
		}
	}
	return "", nil
}

// RoleLabel implements roster.RoleSource: it fetches the member and reduces
// their current roles. A member who left the guild yields the empty string,
// which the roster treats as an unqualifying role.
func (d *RoleDirectory) RoleLabel(ctx context.Context, userID string) (string, error) {
	member, err := d.session.GuildMember(d.guildID, userID, discordgo.WithContext(ctx))
	if err != nil {
		if isUnknownMember(err) {
			return "", nil
		}
		return "", fmt.Errorf("fetch member %s: %w", userID, err)
	}
	return d.HighestLabel(member.Roles)
}

// Invalidate drops the cached role table; the next lookup refetches it.
// Called when guild roles change.
func (d *RoleDirectory) Invalidate() {
	d.mu.Lock()
	d.nameByID = nil
	d.mu.Unlock()
}

func (d *RoleDirectory) roleNames() (map[string]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.nameByID != nil {
		return d.nameByID, nil
	}
	roles, err := d.session.GuildRoles(d.guildID)
	if err != nil {
		return nil, fmt.Errorf("fetch guild roles: %w", err)
	}
	d.nameByID = make(map[string]string, len(roles))
	for _, role := range roles {
		d.nameByID[role.ID] = role.Name
	}
	return d.nameByID, nil
}

func isUnknownMember(err error) bool {
	var rest *discordgo.RESTError
	if !errors.As(err, &rest) || rest.Message == nil {
		return false
	}
	return rest.Message.Code == discordgo.ErrCodeUnknownMember
}
