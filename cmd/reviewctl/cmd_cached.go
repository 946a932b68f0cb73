// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

// cmdCached prints the cached reviews of a paper or deletes them from the
// signature cache.
type cmdCached struct {
	Args struct {
		PaperID int `positional-arg-name:"paperid"`
	} `required:"true" positional-args:"true"`

	Del bool `long:"del" description:"Delete the cached signatures"`
}

// Execute executes the command.
//
// This function satisfies the go-flags Commander interface.
func (c *cmdCached) Execute(args []string) error {
	if c.Del {
		err := cache.Del([]int{c.Args.PaperID})
		if err != nil {
			return err
		}
		log.Infof("Paper %v signatures deleted", c.Args.PaperID)
		return nil
	}

	records, err := cache.Records(newPaper(c.Args.PaperID))
	if err != nil {
		return err
	}
	printRecords(records)

	return nil
}
