package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadProfile_ReadsBothFilesVerbatim(t *testing.T) {
	dir := t.TempDir()
	resumePath := filepath.Join(dir, "resume-summary.txt")
	aboutPath := filepath.Join(dir, "linkdin-about-section.txt")
	if err := os.WriteFile(resumePath, []byte("Go engineer\n\n6 years\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(aboutPath, []byte("I like systems."), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadProfile(ProfileConfig{
		ResumePath:  resumePath,
		AboutPath:   aboutPath,
		UserName:    "Alex",
		PhoneNumber: "555",
		ResumeLink:  "https://example.com/cv",
		HomeRegion:  "India",
	})
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if p.ResumeText != "Go engineer\n\n6 years\n" {
		t.Errorf("ResumeText = %q", p.ResumeText)
	}
	if p.ProfileText != "I like systems." {
		t.Errorf("ProfileText = %q", p.ProfileText)
	}
	if p.UserName != "Alex" || p.PhoneNumber != "555" || p.ResumeLink != "https://example.com/cv" || p.HomeRegion != "India" {
		t.Errorf("identity = %+v", p)
	}
}

func TestLoadProfile_MissingResumeFails(t *testing.T) {
	dir := t.TempDir()
	aboutPath := filepath.Join(dir, "about.txt")
	if err := os.WriteFile(aboutPath, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadProfile(ProfileConfig{ResumePath: filepath.Join(dir, "missing.txt"), AboutPath: aboutPath})
	if err == nil {
		t.Fatal("expected error when resume file is missing")
	}
}

func TestLoadProfile_MissingAboutFails(t *testing.T) {
	dir := t.TempDir()
	resumePath := filepath.Join(dir, "resume.txt")
	if err := os.WriteFile(resumePath, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadProfile(ProfileConfig{ResumePath: resumePath, AboutPath: filepath.Join(dir, "missing.txt")})
	if err == nil {
		t.Fatal("expected error when about file is missing")
	}
}
