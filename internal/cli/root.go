// Package cli 离线命令行：直接读取目录文件运行排课核心，不依赖数据库。
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/albert-jeong/auto-class/config"
)

var version = "dev" // 构建时通过 ldflags 注入

// options 所有子命令共享的全局参数
type options struct {
	configPath string
	cfg        *config.Config
}

// NewRootCmd 创建 planner 根命令
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "planner",
		Short: "根据课程目录推荐无冲突课表",
		Long: `planner 读取课程目录文件（TSV / CSV / XLSX），
按必修、选修、通识的顺序挑选时间不冲突且评分最高的班级，
并为每个科目给出一个备选班。`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadDotEnv(); err != nil {
				return err
			}
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "配置文件路径（提供 planner.* 与 catalog.* 默认值）")

	root.AddCommand(newRecommendCmd(opts))
	root.AddCommand(newSubjectsCmd(opts))
	return root
}

// Execute 运行 CLI，由 cmd/planner 调用
func Execute() {
	if err := NewRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "错误:", err)
		os.Exit(1)
	}
}
