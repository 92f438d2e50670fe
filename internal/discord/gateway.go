package discord

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/Karatekid05/monadians-wallet-collector/internal/roster"
	"github.com/Karatekid05/monadians-wallet-collector/pkg/types"
)

// walletPattern matches an EVM address: 0x followed by 40 hex characters.
var walletPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// Bot wires the Discord gateway to the roster store. It understands three
// chat commands: "!wallet <address>" to submit or update a wallet,
// "!status" to look up the caller's stored record, and "!refresh" (admins)
// to trigger a full role reconciliation in the background.
type Bot struct {
	session *discordgo.Session
	store   *roster.Store
	dir     *RoleDirectory
	cfg     types.Config
	logger  *zap.Logger
}

// NewBot creates the gateway session. Open must be called to connect.
func NewBot(cfg types.Config, store *roster.Store, logger *zap.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentGuilds |
		discordgo.IntentGuildMessages |
		discordgo.IntentGuildMembers |
		discordgo.IntentMessageContent

	bot := &Bot{
		session: session,
		store:   store,
		dir:     NewRoleDirectory(session, cfg.GuildID, cfg.Mappings),
		cfg:     cfg,
		logger:  logger,
	}
	session.AddHandler(bot.onMessage)
	session.AddHandler(func(_ *discordgo.Session, _ *discordgo.GuildRoleUpdate) {
		bot.dir.Invalidate()
	})
	return bot, nil
}

// Directory exposes the role directory, used as the RoleSource for
// scheduled refreshes.
func (b *Bot) Directory() *RoleDirectory {
	return b.dir
}

// Open connects to the gateway.
func (b *Bot) Open() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open gateway: %w", err)
	}
	b.logger.Info("gateway connected", zap.String("guild_id", b.cfg.GuildID))
	return nil
}

// Close disconnects from the gateway.
func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.GuildID != b.cfg.GuildID {
		return
	}
	content := strings.TrimSpace(m.Content)
	ctx := context.Background()

	switch {
	case strings.HasPrefix(content, "!wallet"):
		b.handleWallet(ctx, s, m, strings.TrimSpace(strings.TrimPrefix(content, "!wallet")))
	case content == "!status":
		b.handleStatus(ctx, s, m)
	case content == "!refresh":
		b.handleRefresh(ctx, s, m)
	}
}

func (b *Bot) handleWallet(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, address string) {
	if !walletPattern.MatchString(address) {
		b.reply(s, m, "That doesn't look like a wallet address. Expected 0x followed by 40 hex characters.")
		return
	}
	if m.Member == nil {
		return
	}

	label, err := b.dir.HighestLabel(m.Member.Roles)
	if err != nil {
		b.logger.Error("resolve member roles", zap.String("user_id", m.Author.ID), zap.Error(err))
		b.reply(s, m, "Something went wrong, try again in a minute.")
		return
	}

	rec := types.Record{
		Username: m.Author.Username,
		UserID:   m.Author.ID,
		Wallet:   address,
		Role:     label,
	}
	action, err := b.store.Upsert(ctx, rec)
	if err != nil {
		b.logger.Error("upsert wallet", zap.String("user_id", m.Author.ID), zap.Error(err))
		b.reply(s, m, "Couldn't save your wallet, try again in a minute.")
		return
	}

	switch action {
	case types.Skipped:
		b.reply(s, m, "You need one of the qualifying roles before submitting a wallet.")
	case types.Inserted:
		b.reply(s, m, fmt.Sprintf("Wallet saved under **%s**.", label))
	case types.Updated:
		b.reply(s, m, "Wallet updated.")
	}
}

func (b *Bot) handleStatus(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate) {
	row, err := b.store.Locate(ctx, m.Author.ID)
	if errors.Is(err, types.ErrNotFound) {
		b.reply(s, m, "No wallet on file. Submit one with `!wallet <address>`.")
		return
	}
	if err != nil {
		b.logger.Error("locate record", zap.String("user_id", m.Author.ID), zap.Error(err))
		b.reply(s, m, "Couldn't look that up, try again in a minute.")
		return
	}
	b.reply(s, m, fmt.Sprintf("On file: `%s` as **%s**.", row.Record.Wallet, row.Record.Role))
}

// handleRefresh kicks off a full role refresh in the background and
// announces the result in the channel when it finishes.
func (b *Bot) handleRefresh(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate) {
	if !b.isAdmin(s, m) {
		b.reply(s, m, "Only server admins can run a refresh.")
		return
	}
	b.reply(s, m, "Refreshing roles, this can take a while...")

	channelID := m.ChannelID
	go func() {
		_, err := b.store.RefreshRoles(ctx, b.dir, b.cfg.PoolSize(), func(report types.RefreshReport) {
			msg := fmt.Sprintf("Refresh done: %d scanned, %d unchanged, %d updated, %d moved.",
				report.Scanned, report.Unchanged, report.Result.Updated, report.Result.Moved)
			if _, err := s.ChannelMessageSend(channelID, msg); err != nil {
				b.logger.Warn("announce refresh result", zap.Error(err))
			}
		})
		if err != nil {
			b.logger.Error("role refresh", zap.Error(err))
			if _, err := s.ChannelMessageSend(channelID, "Refresh failed, check the logs."); err != nil {
				b.logger.Warn("announce refresh failure", zap.Error(err))
			}
		}
	}()
}

// isAdmin computes channel permissions; Member.Permissions is not populated
// on message events.
func (b *Bot) isAdmin(s *discordgo.Session, m *discordgo.MessageCreate) bool {
	perms, err := s.UserChannelPermissions(m.Author.ID, m.ChannelID)
	if err != nil {
		b.logger.Warn("compute permissions", zap.String("user_id", m.Author.ID), zap.Error(err))
		return false
	}
	return perms&discordgo.PermissionAdministrator != 0
}

func (b *Bot) reply(s *discordgo.Session, m *discordgo.MessageCreate, text string) {
	if _, err := s.ChannelMessageSendReply(m.ChannelID, text, m.Reference()); err != nil {
		b.logger.Warn("send reply", zap.Error(err))
	}
}
