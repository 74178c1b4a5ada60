package consts

const (
	TopicBeersPublished = "content.beers_published"
)

// Publish triggers, used as event and metric labels
const (
	TriggerScheduled = "scheduled"
	TriggerCatchUp   = "catch_up"
)
