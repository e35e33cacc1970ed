// Package branch classifies git branch names for the release workflow.
//
// A branch is the trunk (receives merges of final releases), the
// development branch (where new releases start), a release branch named
// "release/<version>", or something else. Classification is a pure function
// of the name; nothing here talks to git.
package branch
