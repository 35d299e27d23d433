package models

// PushRequest is the direct-send HTTP body. Exactly one of Token,
// Tokens, or Topic selects the target.
type PushRequest struct {
	Token  string                 `json:"token"`
	Tokens []string               `json:"tokens"`
	Topic  string                 `json:"topic"`
	Title  string                 `json:"title"`
	Body   string                 `json:"body"`
	Data   map[string]interface{} `json:"data"`
}

type PushResponse struct {
	Success bool `json:"success"`
	Sent    int  `json:"sent"`
	Failed  int  `json:"failed"`
}

type TopicPushResponse struct {
	Success bool   `json:"success"`
	Topic   string `json:"topic"`
}
