package prompt

import "github.com/promptsmith/promptsmith/internal/models"

// NormalizePrompt maps NULL-able store columns to safe defaults: nil tags
// become an empty set and a missing folder becomes DefaultFolder.
func NormalizePrompt(p *models.Prompt) *models.Prompt {
	if p == nil {
		return nil
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Folder == "" {
		p.Folder = DefaultFolder
	}
	return p
}
