// Package features turns a URL string into the fixed nine-slot lexical
// feature vector used by the phishing classifier.
//
// Every function here is pure and never fails: malformed input degrades to
// an empty host or a zero count rather than an error. Host derivation is the
// only step that can go wrong, and it is split in two explicit stages:
//
//  1. SplitHost performs a registrable-domain aware split of the URL's
//     network location using the public suffix list.
//  2. If SplitHost rejects the input, the hostname reported by net/url is
//     used instead, and failing that the empty string.
//
// DeriveHost composes both stages and is what Extract uses.
package features
