package bot

// Helpers for tracking which Discord user is in which match, and which
// channel a match's announcements should land in.

func (b *DiscordBot) trackPlayer(playerID, discordUserID string) {
	b.discordMu.Lock()
	b.playerToDiscord[playerID] = discordUserID
	b.discordMu.Unlock()
}

func (b *DiscordBot) trackMatch(discordUserID, matchID string) {
	b.matchMu.Lock()
	b.activeMatches[discordUserID] = matchID
	b.matchMu.Unlock()
}

func (b *DiscordBot) trackChannel(matchID, channelID string) {
	b.channelMu.Lock()
	b.matchToChannel[matchID] = channelID
	b.channelMu.Unlock()
}

func (b *DiscordBot) getActiveMatch(discordUserID string) (string, bool) {
	b.matchMu.RLock()
	defer b.matchMu.RUnlock()
	matchID, ok := b.activeMatches[discordUserID]
	return matchID, ok
}

// registerMatch tracks player, match, and channel together, for the
// player who just hosted a match.
func (b *DiscordBot) registerMatch(playerID, discordUserID, matchID, channelID string) {
	b.trackPlayer(playerID, discordUserID)
	b.trackMatch(discordUserID, matchID)
	b.trackChannel(matchID, channelID)
}
