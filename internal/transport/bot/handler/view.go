package handler

const (
	startMessage = `👋 <b>Auction sniper control</b>

/status - all tracked sessions
/session &lt;realm id&gt; - one session in detail
/buy &lt;realm id&gt; - execute the current deal
/skip &lt;realm id&gt; - skip the current deal
/pause &lt;realm id&gt; - disable purchasing
/resume &lt;realm id&gt; - re-enable purchasing
/scan &lt;realm id&gt; - queue an immediate scan`

	missingRealmArgument = "Usage: send the command with a connected realm id, e.g. /skip 1403"
	invalidRealmArgument = "The realm id must be a number."
	sessionNotFound      = "No session for that realm yet. Queue a scan first."
	noSessions           = "No sessions tracked yet."
)
