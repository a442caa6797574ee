package loader

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/mrnavastar/mclaunch/util"
	"github.com/mrnavastar/mclaunch/util/fileutils"
)

// Layout identifies the package an installer jar ships its classes under.
type Layout int

const (
	UnknownLayout Layout = iota
	NeoForgedLayout
	MinecraftForgeLayout
)

func (l Layout) String() string {
	switch l {
	case NeoForgedLayout:
		return "net.neoforged"
	case MinecraftForgeLayout:
		return "net.minecraftforge"
	default:
		return "unknown"
	}
}

// layoutStrategy knows how to recognise one installer layout and how to
// drive it headlessly.
type layoutStrategy struct {
	marker  string
	pkg     string
	class   string
	program *template.Template
}

type driverData struct {
	Package string
	Class   string
}

var strategies = map[Layout]layoutStrategy{
	NeoForgedLayout: {
		marker:  "net/neoforged/installer/SimpleInstaller.class",
		pkg:     "net.neoforged",
		class:   "NeoForgeInstaller",
		program: template.Must(template.New("neoforged").Parse(neoForgedDriver)),
	},
	MinecraftForgeLayout: {
		marker:  "net/minecraftforge/installer/SimpleInstaller.class",
		pkg:     "net.minecraftforge",
		class:   "ForgeInstaller",
		program: template.Must(template.New("minecraftforge").Parse(minecraftForgeDriver)),
	},
}

// probeOrder is the order markers are looked for in a jar.
var probeOrder = []Layout{NeoForgedLayout, MinecraftForgeLayout}

// DetectLayout probes the installer jar for each known marker class.
func DetectLayout(jar string) (Layout, error) {
	for _, layout := range probeOrder {
		found, err := fileutils.HasJarEntry(jar, strategies[layout].marker)
		if err != nil {
			return UnknownLayout, fmt.Errorf("reading installer %s: %w", jar, err)
		}
		if found {
			return layout, nil
		}
	}
	return UnknownLayout, fmt.Errorf("%w: %s", util.ErrUnknownInstallerLayout, jar)
}

// Driver renders the java source that runs the installer's client action.
// It returns the class name, which is also the file's base name.
func (l Layout) Driver() (string, []byte, error) {
	strategy, ok := strategies[l]
	if !ok {
		return "", nil, util.ErrUnknownInstallerLayout
	}

	var buf bytes.Buffer
	if err := strategy.program.Execute(&buf, driverData{Package: strategy.pkg, Class: strategy.class}); err != nil {
		return "", nil, fmt.Errorf("rendering %s driver: %w", l, err)
	}
	return strategy.class, buf.Bytes(), nil
}

const neoForgedDriver = `import java.io.File;
import java.io.OutputStream;
import {{.Package}}.installer.SimpleInstaller;
import {{.Package}}.installer.actions.Actions;
import {{.Package}}.installer.actions.ProgressCallback;
import {{.Package}}.installer.json.InstallV1;
import {{.Package}}.installer.json.Util;

public class {{.Class}} {
    public static void main(String[] args) {
        SimpleInstaller.headless = true;
        System.setProperty("java.net.preferIPv4Stack", "true");
        ProgressCallback monitor = ProgressCallback.withOutputs(new OutputStream[] { System.out });
        Actions action = Actions.CLIENT;
        try {
            InstallV1 install = Util.loadInstallProfile();
            File installer = new File(SimpleInstaller.class.getProtectionDomain().getCodeSource().getLocation().toURI());
            if (!action.getAction(install, monitor).run(new File("."), a -> true, installer)) {
                System.out.println("Error");
                System.exit(1);
            }
            System.out.println(action.getSuccess());
        } catch (Throwable e) {
            e.printStackTrace();
            System.exit(1);
        }
        System.exit(0);
    }
}
`

// The forge package is shared by forge installers and early neoforge ones,
// whose client action run takes either (target, installer) or
// (target, optionals, installer).
const minecraftForgeDriver = `import java.io.File;
import java.io.OutputStream;
import java.lang.reflect.Method;
import java.util.function.Predicate;
import {{.Package}}.installer.SimpleInstaller;
import {{.Package}}.installer.actions.Actions;
import {{.Package}}.installer.actions.ProgressCallback;
import {{.Package}}.installer.json.InstallV1;
import {{.Package}}.installer.json.Util;

public class {{.Class}} {
    public static void main(String[] args) {
        SimpleInstaller.headless = true;
        System.setProperty("java.net.preferIPv4Stack", "true");
        ProgressCallback monitor = ProgressCallback.withOutputs(new OutputStream[] { System.out });
        Actions action = Actions.CLIENT;
        try {
            InstallV1 install = Util.loadInstallProfile();
            File installer = new File(SimpleInstaller.class.getProtectionDomain().getCodeSource().getLocation().toURI());
            Object task = action.getAction(install, monitor);
            Predicate<String> optionals = a -> true;
            Object ok = null;
            for (Method m : task.getClass().getMethods()) {
                if (!m.getName().equals("run")) {
                    continue;
                }
                Class<?>[] params = m.getParameterTypes();
                if (params.length == 2 && params[1] == File.class) {
                    ok = m.invoke(task, new File("."), installer);
                } else if (params.length == 3 && params[2] == File.class) {
                    ok = m.invoke(task, new File("."), optionals, installer);
                }
                if (ok != null) {
                    break;
                }
            }
            if (!Boolean.TRUE.equals(ok)) {
                System.out.println("Error");
                System.exit(1);
            }
            System.out.println(action.getSuccess());
        } catch (Throwable e) {
            e.printStackTrace();
            System.exit(1);
        }
        System.exit(0);
    }
}
`
