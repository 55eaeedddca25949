package config

import (
	"fmt"

	"github.com/amishk599/replydraft/internal/model"
	"github.com/amishk599/replydraft/internal/resume"
)

// LoadProfile reads both profile text files in full and assembles the
// immutable profile. Failure to read either file is returned as an error;
// callers treat it as fatal.
func LoadProfile(pc ProfileConfig) (model.Profile, error) {
	resumeText, err := resume.ReadText(pc.ResumePath)
	if err != nil {
		return model.Profile{}, fmt.Errorf("load resume summary: %w", err)
	}

	aboutText, err := resume.ReadText(pc.AboutPath)
	if err != nil {
		return model.Profile{}, fmt.Errorf("load profile about: %w", err)
	}

	return model.Profile{
		UserName:    pc.UserName,
		PhoneNumber: pc.PhoneNumber,
		ResumeLink:  pc.ResumeLink,
		ResumeText:  resumeText,
		ProfileText: aboutText,
		HomeRegion:  pc.HomeRegion,
	}, nil
}
