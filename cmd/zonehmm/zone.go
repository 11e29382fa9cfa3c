package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/unixpickle/discrete-hmm/corpus"
)

func (a *app) zoneCmd() *cobra.Command {
	var imagesPath, labelsPath string
	var limit int
	cmd := &cobra.Command{
		Use:   "zone",
		Short: "Convert IDX images and labels to a zoning file on stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			imagesFile, err := os.Open(imagesPath)
			if err != nil {
				return err
			}
			images, err := corpus.ReadIDXImages(imagesFile, limit)
			imagesFile.Close()
			if err != nil {
				return err
			}
			labelsFile, err := os.Open(labelsPath)
			if err != nil {
				return err
			}
			labels, err := corpus.ReadIDXLabels(labelsFile)
			labelsFile.Close()
			if err != nil {
				return err
			}
			if len(labels) < len(images) {
				return fmt.Errorf("%d labels for %d images", len(labels), len(images))
			}

			samples := make([]corpus.Sample, len(images))
			for i, img := range images {
				samples[i] = corpus.Sample{
					Class: strconv.Itoa(labels[i]),
					Obs:   corpus.Zone(img, a.cfg.Zones, a.cfg.Shades),
				}
			}
			return corpus.WriteZoning(cmd.OutOrStdout(), samples)
		},
	}
	cmd.Flags().StringVar(&imagesPath, "images", "", "IDX image file")
	cmd.Flags().StringVar(&labelsPath, "labels", "", "IDX label file")
	cmd.Flags().IntVar(&limit, "limit", -1, "maximum number of images (-1 for all)")
	cmd.MarkFlagRequired("images")
	cmd.MarkFlagRequired("labels")
	return cmd
}
