package classify

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// RuleSpec is one rule as written in a rule file.
type RuleSpec struct {
	Name    string `yaml:"name"`
	Pattern string `yaml:"pattern"`
}

// RuleFile is the on-disk form of a classifier.
//
//	extends: pl
//	question:
//	  - name: frage
//	    pattern: '(?i)welche[rs]?\s'
//	answer:
//	  - name: ja-nein
//	    pattern: '(?i)^(ja|nein)$'
//
// When extends names a built-in set, its rules run before the file's own.
type RuleFile struct {
	Extends  string     `yaml:"extends"`
	Question []RuleSpec `yaml:"question"`
	Answer   []RuleSpec `yaml:"answer"`
}

// LoadFile reads a YAML rule file and compiles it into a Classifier.
func LoadFile(path string) (Classifier, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Classifier{}, fmt.Errorf("read rules: %w", err)
	}
	var rf RuleFile
	if err := yaml.Unmarshal(b, &rf); err != nil {
		return Classifier{}, fmt.Errorf("parse rules %s: %w", filepath.Base(path), err)
	}
	c, err := rf.Compile()
	if err != nil {
		return Classifier{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return c, nil
}

// Compile builds the classifier described by the file.
func (rf RuleFile) Compile() (Classifier, error) {
	var c Classifier
	if strings.TrimSpace(rf.Extends) != "" {
		base, err := Builtin(rf.Extends)
		if err != nil {
			return Classifier{}, err
		}
		c.Question = append(c.Question, base.Question...)
		c.Answer = append(c.Answer, base.Answer...)
	}
	q, err := compileSpecs("question", rf.Question)
	if err != nil {
		return Classifier{}, err
	}
	a, err := compileSpecs("answer", rf.Answer)
	if err != nil {
		return Classifier{}, err
	}
	c.Question = append(c.Question, q...)
	c.Answer = append(c.Answer, a...)
	if len(c.Question) == 0 || len(c.Answer) == 0 {
		return Classifier{}, errors.New("rule file needs at least one question and one answer rule")
	}
	return c, nil
}

func compileSpecs(kind string, specs []RuleSpec) (RuleSet, error) {
	out := make(RuleSet, 0, len(specs))
	for i, s := range specs {
		name := s.Name
		if name == "" {
			name = fmt.Sprintf("%s-%d", kind, i+1)
		}
		if strings.TrimSpace(s.Pattern) == "" {
			return nil, fmt.Errorf("%s rule %q: empty pattern", kind, name)
		}
		r, err := NewRule(name, s.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%s %w", kind, err)
		}
		out = append(out, r)
	}
	return out, nil
}

// Load resolves a rules setting: a built-in name or a path to a rule file.
func Load(nameOrPath string) (Classifier, error) {
	if strings.TrimSpace(nameOrPath) == "" {
		return Default(), nil
	}
	if c, err := Builtin(nameOrPath); err == nil {
		return c, nil
	}
	if _, err := os.Stat(nameOrPath); err != nil {
		return Classifier{}, fmt.Errorf("rules %q is neither a built-in set nor a readable file: %w", nameOrPath, err)
	}
	return LoadFile(nameOrPath)
}
