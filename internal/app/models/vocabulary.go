package models

// Suggestion lists offered to clients when entering a record. Stored values
// are plain strings and are never checked against these lists.
var (
	SkillSuggestions = []string{
		"HTML", "CSS", "JavaScript", "TypeScript",
		"PHP", "Ruby", "Python", "Java", "Node.js", "Go", "Perl",
		"Swift", "Kotlin", "Objective-C", "Dart",
		"C", "C++", "C#", "Lua", "GDScript", "Rust",
		"R", "Julia", "MATLAB", "Scala",
		"Shell Script", "PowerShell", "VBA", "SQL",
		"Visual Basic .NET", "Delphi", "Object Pascal",
		"Solidity", "Vyper", "Google Apps Script", "Scratch", "Blockly",
	}

	ClassNameSuggestions = []string{
		"NF1", "SF1", "SF2",
		"TF1", "JF1", "NS1",
		"SS1", "SS2", "NT1", "NV1",
	}

	GenderSuggestions = []string{"Male", "Female", "Other"}

	AvailabilitySuggestions = []string{
		"Within 1 week", "Within 2 weeks", "Within 1 month", "Within 3 months", "No preference",
	}
)
