// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package review decodes and encodes peer review records whose storage layout
has changed across several schema versions.

A review field is addressed by either its legacy column name, such as
overAllMerit, or by a 3 character short id, such as s01 or t03. Resolve maps
a field id to the place the field is stored under a given schema version.
Hydrate and HydrateSignature build a Record from a raw review row or from a
compact review signature. UnparseScores and UnparseTexts produce the JSON
blobs that newer schema versions store the review fields in.

The package also contains the rating mask codec used for the ratings that
reviewers give each other's reviews and the orderings used to display and
identify reviews.
*/
package review
