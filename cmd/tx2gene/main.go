// tx2gene extracts the transcript-to-gene mapping from a StringTie ballgown
// t_data.ctab and prints it as a two-column tsv, ready to be passed to
// quantcomp -t2g. Any sample's t_data.ctab will do, because every sample of a
// run shares the same annotation.
package main

import (
	"bufio"
	"encoding/csv"
	"flag"
	"log"
	"os"
	"sort"

	"github.com/carbocation/quantcomp/quant"
)

const (
	// Delim is the character used to delimit the output
	Delim = '\t'
)

var (
	STDOUT = bufio.NewWriterSize(os.Stdout, 4096)
)

func main() {
	defer STDOUT.Flush()

	var filename string
	flag.StringVar(&filename, "ctab", "", "Path to the t_data.ctab file to extract the transcript-gene mapping from.")
	flag.Parse()

	if filename == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	t2g, err := quant.TranscriptGeneMapFromCtab(filename)
	if err != nil {
		log.Fatalln(err)
	}

	log.Println("Mapped", len(t2g), "transcripts")

	if err := PrintMap(t2g); err != nil {
		log.Fatalln(err)
	}
}

func PrintMap(t2g quant.TranscriptGeneMap) error {
	transcripts := make([]string, 0, len(t2g))
	for transcript := range t2g {
		transcripts = append(transcripts, transcript)
	}
	sort.Strings(transcripts)

	w := csv.NewWriter(STDOUT)
	w.Comma = Delim
	defer w.Flush()

	// Print the header
	if err := w.Write([]string{"transcript_id", "gene_id"}); err != nil {
		return err
	}

	for _, transcript := range transcripts {
		if err := w.Write([]string{transcript, t2g[transcript]}); err != nil {
			return err
		}
	}

	return nil
}
