package consts

const (
	TopicStateTransitioned = "journey.state_transitioned"
)

// Commands accepted on the commands topic
const (
	CommandRunWeeklyTransition = "run_weekly_transition"
	CommandPublishDueItems     = "publish_due_items"
	CommandSendWeeklyDigest    = "send_weekly_digest"
)
