package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/albert-jeong/auto-class/internal/catalog"
	"github.com/albert-jeong/auto-class/internal/planner"
)

func newSubjectsCmd(opts *options) *cobra.Command {
	var (
		catalogPath string
		category    string
		encoding    string
	)

	cmd := &cobra.Command{
		Use:   "subjects",
		Short: "列出目录中某类别的科目名",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if encoding == "" {
				encoding = opts.cfg.Catalog.DefaultEncoding
			}
			if !catalog.ValidEncoding(encoding) {
				return fmt.Errorf("--encoding 仅支持 auto / utf-8 / utf-16 / euc-kr，收到 %q", encoding)
			}
			offerings, err := loadCatalogFile(catalogPath, encoding)
			if err != nil {
				return err
			}

			var names []string
			switch planner.Category(category) {
			case planner.CategoryMandatory:
				names = planner.MandatorySubjects(offerings)
			case planner.CategoryElective:
				names = planner.ElectiveSubjects(offerings)
			case planner.CategoryGeneral:
				names = planner.GeneralSubjects(offerings)
			default:
				return fmt.Errorf("--category 仅支持 mandatory / elective / general，收到 %q", category)
			}

			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "课程目录文件（.txt / .tsv / .csv / .xlsx）")
	cmd.Flags().StringVar(&category, "category", string(planner.CategoryElective), "mandatory | elective | general")
	cmd.Flags().StringVar(&encoding, "encoding", "", "文本编码：auto | utf-8 | utf-16 | euc-kr")
	_ = cmd.MarkFlagRequired("catalog")
	return cmd
}
