package handlers

const (
	// Request limits
	maxDescriptionLength = 4000 // vibe descriptions sent to the model
	maxInstructionLength = 1000 // per-section song structure instructions
	maxTokenLength       = 64 * 1024

	// Share links
	shareQueryParam  = "s"
	sharePath        = "/share"
	shareRedirectURL = "/"
)
